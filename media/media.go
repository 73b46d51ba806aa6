// Package media recognizes user supplied media references (links or embed
// snippets) and produces embeddable markup for them.
package media

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Provider identifies recognized media source.
type Provider string

const (
	ProviderIframe  Provider = "iframe"
	ProviderCanva   Provider = "canva"
	ProviderYouTube Provider = "youtube"
	ProviderVimeo   Provider = "vimeo"
	ProviderDrive   Provider = "drive"
	ProviderImage   Provider = "image"
)

const (
	ClassPortrait  = "media-container-portrait"
	ClassLandscape = "media-container-landscape"
)

// Media is embeddable media descriptor.
type Media struct {
	Provider Provider
	// Src is embed (or image) address, empty for raw iframe snippets.
	Src string
	// Snippet keeps user supplied iframe verbatim.
	Snippet  string
	Portrait bool
}

// detector returns descriptor when it recognizes input.
type detector func(input string) (*Media, bool)

// detectors are tried in order, first match wins.
var detectors = []detector{
	detectIframe,
	detectCanva,
	detectYouTube,
	detectVimeo,
	detectDrive,
	detectImage,
}

// Classify returns descriptor for raw media string or nil when input is
// blank or not recognized. Orientation only selects aspect ratio container.
func Classify(input string, portrait bool) *Media {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	for _, detect := range detectors {
		if m, ok := detect(input); ok {
			m.Portrait = portrait
			return m
		}
	}
	return nil
}

// ContainerClass returns class name of aspect ratio container: 9:16 for
// portrait, 16:9 otherwise.
func (m *Media) ContainerClass() string {
	if m.Portrait {
		return ClassPortrait
	}
	return ClassLandscape
}

// HTML returns markup for the media. Embeds are always placed into aspect
// ratio container, images only when wrapImage is requested.
func (m *Media) HTML(wrapImage bool) string {
	if m == nil {
		return ""
	}
	var inner string
	switch m.Provider {
	case ProviderIframe:
		inner = m.Snippet
	case ProviderImage:
		inner = fmt.Sprintf(`<img class="media-image" src="%s" alt="" loading="lazy">`, html.EscapeString(m.Src))
		if !wrapImage {
			return inner
		}
	default:
		inner = fmt.Sprintf(`<iframe src="%s" loading="lazy" frameborder="0" allow="fullscreen; autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>`, html.EscapeString(m.Src))
	}
	return fmt.Sprintf(`<div class="%s">%s</div>`, m.ContainerClass(), inner)
}

// detectIframe extracts first complete <iframe>...</iframe> element from the
// snippet keeping its original text.
func detectIframe(input string) (*Media, bool) {
	if !strings.Contains(strings.ToLower(input), "<iframe") {
		return nil, false
	}

	var (
		z      = html.NewTokenizer(strings.NewReader(input))
		b      strings.Builder
		inside bool
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return nil, false
		}
		// TagName normalizes buffer in place, keep original bytes first
		raw := append([]byte(nil), z.Raw()...)
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); !inside && string(name) == "iframe" {
				inside = true
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); inside && string(name) == "iframe" {
				b.Write(raw)
				return &Media{Provider: ProviderIframe, Snippet: b.String()}, true
			}
		}
		if inside {
			b.Write(raw)
		}
	}
}

// parseLink accepts absolute links and bare "host/path" links.
func parseLink(input string) (*url.URL, bool) {
	if strings.ContainsAny(input, " \t\n<>") {
		return nil, false
	}
	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

// hostIs reports whether host is domain or its subdomain.
func hostIs(host, domain string) bool {
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func pathSegments(p string) []string {
	var out []string
	for s := range strings.SplitSeq(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func detectCanva(input string) (*Media, bool) {
	u, ok := parseLink(input)
	if !ok || !hostIs(u.Host, "canva.com") || !strings.Contains(u.Path, "/design/") {
		return nil, false
	}
	u.RawQuery, u.Fragment = "embed", ""
	return &Media{Provider: ProviderCanva, Src: u.String()}, true
}

var reVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func detectYouTube(input string) (*Media, bool) {
	u, ok := parseLink(input)
	if !ok {
		return nil, false
	}

	var id string
	switch {
	case hostIs(u.Host, "youtu.be"):
		if segs := pathSegments(u.Path); len(segs) > 0 {
			id = segs[0]
		}
	case hostIs(u.Host, "youtube.com"):
		segs := pathSegments(u.Path)
		switch {
		case len(segs) == 1 && segs[0] == "watch":
			id = u.Query().Get("v")
		case len(segs) == 2 && (segs[0] == "shorts" || segs[0] == "embed" || segs[0] == "live"):
			id = segs[1]
		}
	default:
		return nil, false
	}

	if !reVideoID.MatchString(id) {
		return nil, false
	}
	return &Media{Provider: ProviderYouTube, Src: "https://www.youtube.com/embed/" + id}, true
}

func detectVimeo(input string) (*Media, bool) {
	u, ok := parseLink(input)
	if !ok || !hostIs(u.Host, "vimeo.com") {
		return nil, false
	}
	segs := pathSegments(u.Path)
	if len(segs) == 0 || !reVideoID.MatchString(segs[len(segs)-1]) {
		return nil, false
	}
	return &Media{Provider: ProviderVimeo, Src: "https://player.vimeo.com/video/" + segs[len(segs)-1]}, true
}

func detectDrive(input string) (*Media, bool) {
	u, ok := parseLink(input)
	if !ok || !hostIs(u.Host, "drive.google.com") {
		return nil, false
	}
	segs := pathSegments(u.Path)
	if len(segs) < 3 || segs[0] != "file" || segs[1] != "d" || !reVideoID.MatchString(segs[2]) {
		return nil, false
	}
	return &Media{Provider: ProviderDrive, Src: "https://drive.google.com/file/d/" + segs[2] + "/preview"}, true
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func detectImage(input string) (*Media, bool) {
	u, ok := parseLink(input)
	if !ok || !imageExtensions[strings.ToLower(path.Ext(u.Path))] {
		return nil, false
	}
	return &Media{Provider: ProviderImage, Src: u.String()}, true
}
