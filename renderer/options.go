package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Reserve a sample count pass even when adaptive sampling is off.
	AddSampleCountPass bool

	// Upper bound for the lookup table storage in floats; 0 disables the
	// limit.
	LookupTableLimit int
}
