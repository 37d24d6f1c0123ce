package toolchain

// WasiSDKURL exposes wasiSDKURL for testing.
var WasiSDKURL = wasiSDKURL

// NewStagerForHost creates a Stager with a fixed host and PATH lookup for testing.
func NewStagerForHost(s *Stager, goos string, lookPath func(string) (string, error)) *Stager {
	s.goos = goos
	s.lookPath = lookPath
	return s
}
