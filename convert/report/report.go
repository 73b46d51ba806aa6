// Package report assembles content blocks into complete self contained HTML
// document.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"evostudio/common"
	"evostudio/config"
	"evostudio/content"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Assets are loaded by the caller and injected as is. Logo is trusted inline
// markup, CSS is appended to built-in stylesheet, FontLinks are webfont
// stylesheets linked from document head.
type Assets struct {
	Logo      string
	CSS       string
	FontLinks []string
}

// Link is call to action button rendered after main content.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Page is everything linear block form of report needs.
type Page struct {
	Blocks   content.Blocks
	Category string
	Bonus    []BonusElement
	Links    []Link
	// Date is report date, zero means now.
	Date time.Time
}

// Option customizes Renderer.
type Option func(*Renderer)

// WithClock replaces source of report date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// Renderer is immutable after construction and could be used concurrently.
type Renderer struct {
	cfg    config.ReportConfig
	assets Assets
	log    *zap.Logger
	tmpl   *template.Template
	now    func() time.Time
}

func NewRenderer(cfg *config.ReportConfig, assets Assets, log *zap.Logger, opts ...Option) (*Renderer, error) {
	if !cfg.Style.IsValid() {
		return nil, fmt.Errorf("unsupported report style %d", cfg.Style)
	}
	if log == nil {
		log = zap.NewNop()
	}

	tmpl, err := template.New("report").Funcs(sprig.HtmlFuncMap()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("unable to parse report templates: %w", err)
	}

	r := &Renderer{
		cfg:    *cfg,
		assets: assets,
		log:    log.Named("report"),
		tmpl:   tmpl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Style returns configured document style.
func (r *Renderer) Style() common.ReportStyle {
	return r.cfg.Style
}

// Render is linear block entry point.
func (r *Renderer) Render(blocks content.Blocks, category string) (string, error) {
	return r.RenderPage(Page{Blocks: blocks, Category: category})
}

// RenderFields is fixed field entry point. Fields are validated before
// anything is rendered.
func (r *Renderer) RenderFields(f Fields) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	return r.RenderPage(Page{
		Blocks:   f.Blocks(),
		Category: f.Category,
		Bonus:    f.Bonus,
		Links:    f.Links,
	})
}

// RenderPage renders blocks strictly in order followed by optional bonus
// section and links.
func (r *Renderer) RenderPage(p Page) (string, error) {
	bonus, err := normalizeBonus(p.Bonus)
	if err != nil {
		return "", err
	}

	var body strings.Builder
	for i := range p.Blocks {
		if err := writeBlock(&body, &p.Blocks[i]); err != nil {
			return "", err
		}
	}
	writeBonus(&body, bonus)

	date := p.Date
	if date.IsZero() {
		date = r.now()
	}
	category, icon := r.badge(p.Category)

	title := strings.TrimSpace(p.Blocks.Heading())
	if title == "" {
		title = category
	}

	doc := document{
		Title:         title,
		Style:         r.cfg.Style.String(),
		ViewportWidth: r.cfg.ViewportWidth,
		FontLinks:     append(append([]string(nil), r.cfg.Fonts...), r.assets.FontLinks...),
		ExtraCSS:      template.CSS(r.assets.CSS),
		Logo:          template.HTML(r.assets.Logo),
		Category:      category,
		CategoryIcon:  icon,
		Date:          date.Format(r.cfg.DateFormat),
		Content:       template.HTML(body.String()),
		Links:         r.normalizeLinks(p.Links),
		SocialLinks:   r.cfg.SocialLinks,
	}

	r.log.Debug("Rendering report",
		zap.Int("blocks", len(p.Blocks)), zap.Int("bonus", len(bonus)),
		zap.String("category", category), zap.Stringer("style", r.cfg.Style))

	buf := new(bytes.Buffer)
	if err := r.tmpl.ExecuteTemplate(buf, r.cfg.Style.TemplateName(), doc); err != nil {
		return "", fmt.Errorf("unable to execute report template: %w", err)
	}
	return buf.String(), nil
}

// document is template data.
type document struct {
	Title         string
	Style         string
	ViewportWidth int
	FontLinks     []string
	ExtraCSS      template.CSS
	Logo          template.HTML
	Category      string
	CategoryIcon  string
	Date          string
	Content       template.HTML
	Links         []Link
	SocialLinks   []config.LinkConfig
}

// badge returns category label and icon, known update types are normalized
// to their labels.
func (r *Renderer) badge(category string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = r.cfg.Category
	}
	if u, ok := common.LookupUpdateType(category); ok {
		return u.Label(), u.Icon()
	}
	return category, common.DefaultUpdateIcon
}

// normalizeLinks drops links without URL, links without label get
// configured default.
func (r *Renderer) normalizeLinks(links []Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			continue
		}
		if l.Label = strings.TrimSpace(l.Label); l.Label == "" {
			l.Label = r.cfg.LinkLabel
		}
		out = append(out, l)
	}
	return out
}
