package imagegen

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strconv"
)

const bytesPerLine = 16

const generatedHeader = "// Code generated by rbwasm. DO NOT EDIT.\n\n"

// embeddedFile is one file of the image after guest path resolution.
type embeddedFile struct {
	guest string
	host  string
	data  []byte
}

// renderFilesystem writes the C translation unit registering files with the wasi-vfs runtime.
// Files are grouped by guest directory; directories are emitted in lexical order.
func renderFilesystem(files []embeddedFile) []byte {
	var b bytes.Buffer
	b.WriteString(generatedHeader)
	b.WriteString("#include <stddef.h>\n#include <stdint.h>\n\n")
	b.WriteString("extern size_t __internal_wasi_vfs_rt_add_dir(const char *path);\n")
	b.WriteString("extern void __internal_wasi_vfs_rt_add_file(size_t dir, const char *name, const uint8_t *content, size_t size);\n\n")

	for i, f := range files {
		fmt.Fprintf(&b, "// %s\n", f.guest)
		if len(f.data) == 0 {
			fmt.Fprintf(&b, "static const uint8_t file_%d[1] = {0};\n\n", i)
			continue
		}
		fmt.Fprintf(&b, "static const uint8_t file_%d[%d] = {\n", i, len(f.data))
		writeHexBytes(&b, f.data)
		b.WriteString("};\n\n")
	}

	byDir := make(map[string][]int)
	for i, f := range files {
		dir := path.Dir(f.guest)
		byDir[dir] = append(byDir[dir], i)
	}
	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	b.WriteString("__attribute__((export_name(\"__wasi_vfs_rt_init\")))\n")
	b.WriteString("void __wasi_vfs_rt_init(void) {\n")
	for d, dir := range dirs {
		fmt.Fprintf(&b, "  size_t dir_%d = __internal_wasi_vfs_rt_add_dir(%s);\n", d, cString(dir))
		for _, i := range byDir[dir] {
			fmt.Fprintf(&b, "  __internal_wasi_vfs_rt_add_file(dir_%d, %s, file_%d, %d);\n",
				d, cString(path.Base(files[i].guest)), i, len(files[i].data))
		}
	}
	b.WriteString("}\n")

	return b.Bytes()
}

// renderPresetArgs writes the C translation unit answering the WASI argument
// queries with argv0 followed by args.
func renderPresetArgs(argv0 string, args []string) []byte {
	argv := append([]string{argv0}, args...)

	var b bytes.Buffer
	b.WriteString(generatedHeader)
	b.WriteString("#include <stdint.h>\n#include <string.h>\n\n")
	b.WriteString("static const char *const preset_argv[] = {\n")
	for _, arg := range argv {
		fmt.Fprintf(&b, "  %s,\n", cString(arg))
	}
	b.WriteString("};\n")
	fmt.Fprintf(&b, "static const uint32_t preset_argc = %d;\n\n", len(argv))

	b.WriteString(`int32_t __imported_wasi_snapshot_preview1_args_sizes_get(int32_t argc, int32_t argv_buf_size) {
  uint32_t size = 0;
  for (uint32_t i = 0; i < preset_argc; i++) {
    size += strlen(preset_argv[i]) + 1;
  }
  *(uint32_t *)(uintptr_t)argc = preset_argc;
  *(uint32_t *)(uintptr_t)argv_buf_size = size;
  return 0;
}

int32_t __imported_wasi_snapshot_preview1_args_get(int32_t argv, int32_t argv_buf) {
  uint8_t **out = (uint8_t **)(uintptr_t)argv;
  uint8_t *buf = (uint8_t *)(uintptr_t)argv_buf;
  for (uint32_t i = 0; i < preset_argc; i++) {
    size_t n = strlen(preset_argv[i]) + 1;
    memcpy(buf, preset_argv[i], n);
    out[i] = buf;
    buf += n;
  }
  return 0;
}
`)
	return b.Bytes()
}

func writeHexBytes(b *bytes.Buffer, data []byte) {
	const digits = "0123456789abcdef"
	line := make([]byte, 0, bytesPerLine*6+4)
	for start := 0; start < len(data); start += bytesPerLine {
		end := min(start+bytesPerLine, len(data))
		line = append(line[:0], ' ', ' ')
		for _, c := range data[start:end] {
			line = append(line, '0', 'x', digits[c>>4], digits[c&0x0f], ',')
		}
		line = append(line, '\n')
		b.Write(line)
	}
}

// cString quotes s as a C string literal. Bytes outside printable ASCII are octal escaped.
func cString(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			buf = append(buf, '\\', c)
		case c == '?':
			// Avoids trigraphs.
			buf = append(buf, '\\', '?')
		case c >= 0x20 && c < 0x7f:
			buf = append(buf, c)
		default:
			buf = append(buf, '\\')
			o := strconv.FormatUint(uint64(c), 8)
			for len(o) < 3 {
				o = "0" + o
			}
			buf = append(buf, o...)
		}
	}
	buf = append(buf, '"')
	return string(buf)
}
