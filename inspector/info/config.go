package info

// DefaultChunkSize is the number of bytes read per scan step; declarations are
// expected within the first few KB of a file.
const DefaultChunkSize = 4096

type Config struct {
	ChunkSize int // bytes read per scan step
}

func DefaultConfig() *Config {
	return &Config{
		ChunkSize: DefaultChunkSize,
	}
}

// Init sets defaults for unset fields
func (c *Config) Init() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
}
