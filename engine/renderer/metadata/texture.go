package metadata

/** @brief A CPU-side texture, e.g. a decoded font atlas page. */
type Texture struct {
	/** @brief Generated id, unique per loaded instance. */
	ID string
	/** @brief The Name of the texture, usually its file stem. */
	Name         string
	Width        uint32
	Height       uint32
	ChannelCount uint8
	/** @brief Raw pixel data, Width*Height*ChannelCount bytes. */
	Pixels []uint8
}
