package imagegen

// CString exposes cString for testing.
var CString = cString

// RenderPresetArgs exposes renderPresetArgs for testing.
var RenderPresetArgs = renderPresetArgs
