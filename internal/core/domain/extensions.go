package domain

import (
	"slices"
	"strings"
)

var defaultExtensions = []string{
	"bigdecimal",
	"cgi/escape",
	"continuation",
	"coverage",
	"date",
	"dbm",
	"digest/bubblebabble",
	"digest",
	"digest/md5",
	"digest/rmd160",
	"digest/sha1",
	"digest/sha2",
	"etc",
	"fcntl",
	"fiber",
	"gdbm",
	"json",
	"json/generator",
	"json/parser",
	"nkf",
	"objspace",
	"pathname",
	"psych",
	"racc/cparse",
	"rbconfig/sizeof",
	"ripper",
	"stringio",
	"strscan",
	"monitor",
}

// DefaultExtensions returns the extensions statically linked when none are configured.
func DefaultExtensions() []string {
	return slices.Clone(defaultExtensions)
}

// ParseExtensions splits a comma separated extension list, dropping empty items.
func ParseExtensions(s string) []string {
	var exts []string
	for _, ext := range strings.Split(s, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
