package fetch

import (
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	invalidPathChars = regexp.MustCompile(`[\\/><:"|?*%\x00-\x1f]+`)

	dispositionName     = regexp.MustCompile(`(?i)filename=([^;]+)`)
	dispositionExtended = regexp.MustCompile(`(?i)filename\*=([^;]+)`)
)

// trimSet is stripped from both ends of a header-derived name.
const trimSet = `'\".;)* `

// Sanitize removes characters that are invalid in file names on any
// platform and normalizes the result to NFC.
func Sanitize(name string) string {
	name = invalidPathChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// FilenameFromDisposition extracts the file name of a Content-Disposition
// header. Returns "" when there is none.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}

	// handles quoting and RFC 5987 filename*=UTF-8''...
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := params["filename"]; name != "" {
			return Sanitize(name)
		}
	}

	// servers that send malformed headers
	if m := dispositionExtended.FindStringSubmatch(header); m != nil {
		name := strings.Trim(m[1], trimSet)
		if i := strings.Index(name, "''"); i >= 0 {
			name = name[i+2:]
		}
		if dec, err := url.PathUnescape(name); err == nil {
			name = dec
		}
		return Sanitize(name)
	}
	if m := dispositionName.FindStringSubmatch(header); m != nil {
		return Sanitize(strings.Trim(m[1], trimSet))
	}
	return ""
}

// FilenameFromURL returns the decoded last path element of raw.
func FilenameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return Sanitize(path.Base(strings.TrimRight(raw, `/\`)))
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return Sanitize(u.Hostname())
	}
	return Sanitize(path.Base(p))
}

func pickFilename(disposition, finalURL string) string {
	if name := FilenameFromDisposition(disposition); name != "" {
		return name
	}
	if name := FilenameFromURL(finalURL); name != "" {
		return name
	}
	return "download"
}
