package mapitem

const (
	VersionLength = 1
	InfoLength    = 6
	ImageLength   = 6

	CurrentVersion      = 1
	CurrentInfoVersion  = 1
	CurrentImageVersion = 1
)

// Version is the first item of every map.
type Version struct {
	Version int32
}

func (p *Version) ItemType() Type { return TypeVersion }

func (p *Version) words() []int32 { return []int32{p.Version} }

func decodeVersion(w words) (*Version, error) {
	if err := w.need(VersionLength); err != nil {
		return nil, err
	}
	return &Version{Version: w[0]}, nil
}

// Info references map metadata strings by data block index.
type Info struct {
	Version    int32
	Author     int32
	MapVersion int32
	Credits    int32
	License    int32
	Settings   int32
}

func (p *Info) ItemType() Type { return TypeInfo }

func (p *Info) words() []int32 {
	return []int32{p.Version, p.Author, p.MapVersion, p.Credits, p.License, p.Settings}
}

// EmptyInfo has no strings attached.
func EmptyInfo() *Info {
	return &Info{
		Version:    CurrentInfoVersion,
		Author:     NoData,
		MapVersion: NoData,
		Credits:    NoData,
		License:    NoData,
		Settings:   NoData,
	}
}

func decodeInfo(w words) (*Info, error) {
	if err := w.need(1); err != nil {
		return nil, err
	}
	return &Info{
		Version:    w[0],
		Author:     w.get(1, NoData),
		MapVersion: w.get(2, NoData),
		Credits:    w.get(3, NoData),
		License:    w.get(4, NoData),
		Settings:   w.get(5, NoData),
	}, nil
}

// Image describes an embedded or external image. Data is NoData for external images.
type Image struct {
	Version  int32
	Width    int32
	Height   int32
	External bool
	Name     int32
	Data     int32
}

func (p *Image) ItemType() Type { return TypeImage }

func (p *Image) words() []int32 {
	return []int32{p.Version, p.Width, p.Height, boolWord(p.External), p.Name, p.Data}
}

func decodeImage(w words) (*Image, error) {
	if err := w.need(ImageLength); err != nil {
		return nil, err
	}
	return &Image{
		Version:  w[0],
		Width:    w[1],
		Height:   w[2],
		External: w[3] != 0,
		Name:     w[4],
		Data:     w[5],
	}, nil
}
