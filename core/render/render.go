// ABOUTME: Renderer formatting enriched articles into the newsletter document
// ABOUTME: Pure function of its input; html/template escapes every interpolated value

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"newsletter-api/core/domain"
	timeutil "newsletter-api/pkg/utils/time"
	"newsletter-api/pkg/utils/urls"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Default section caps
const (
	DefaultMainCap          = 6
	DefaultSupplementaryCap = 12
)

const (
	unknownSource    = "source inconnue"
	unknownDate      = "Date non spécifiée"
	placeholderImage = "https://via.placeholder.com/540x300/2563eb/ffffff?text="
)

var emojis = []string{"🔥", "⚡", "📰"}

// Renderer renders newsletters in HTML or Markdown
type Renderer struct {
	templates        *template.Template
	mainCap          int
	supplementaryCap int
}

// NewRenderer parses the embedded templates. Non-positive caps take defaults.
func NewRenderer(mainCap, supplementaryCap int) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse newsletter templates: %w", err)
	}
	if mainCap <= 0 {
		mainCap = DefaultMainCap
	}
	if supplementaryCap <= 0 {
		supplementaryCap = DefaultSupplementaryCap
	}
	return &Renderer{
		templates:        tmpl,
		mainCap:          mainCap,
		supplementaryCap: supplementaryCap,
	}, nil
}

// MainCap is the maximum number of main article blocks
func (r *Renderer) MainCap() int {
	return r.mainCap
}

// SupplementaryCap is the maximum number of supplementary links
func (r *Renderer) SupplementaryCap() int {
	return r.supplementaryCap
}

// Render produces the document in the requested format
func (r *Renderer) Render(format domain.Format, in domain.RenderInput) (string, error) {
	switch format {
	case domain.FormatMarkdown:
		return r.Markdown(in)
	case domain.FormatHTML, "":
		return r.HTML(in)
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// HTML renders the email friendly HTML newsletter
func (r *Renderer) HTML(in domain.RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "newsletter", r.view(in)); err != nil {
		return "", fmt.Errorf("failed to render newsletter: %w", err)
	}
	return buf.String(), nil
}

// Markdown renders a plain document and converts it with html-to-markdown
func (r *Renderer) Markdown(in domain.RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "document", r.view(in)); err != nil {
		return "", fmt.Errorf("failed to render newsletter: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert newsletter to markdown: %w", err)
	}
	return strings.TrimSpace(markdown) + "\n", nil
}

type articleView struct {
	Emoji        string
	Title        string
	URL          string
	Description  string
	Image        string
	HasThumbnail bool
	Age          string
	Source       string
}

type documentView struct {
	Title         string
	PeriodTitle   string
	Date          string
	Theme         string
	Intent        string
	Total         int
	Main          []articleView
	Supplementary []articleView
}

// view applies the caps and removes supplementary links already shown as main articles
func (r *Renderer) view(in domain.RenderInput) documentView {
	date := timeutil.FrenchDate(in.GeneratedAt)

	periodTitle := " - " + date
	if p := strings.TrimSpace(in.Period); p != "" {
		periodTitle = " - " + p
	}

	title := in.Theme + periodTitle
	if in.IntentType == domain.IntentTrends {
		title = "Tendances " + title
	}

	v := documentView{
		Title:       title,
		PeriodTitle: periodTitle,
		Date:        date,
		Theme:       in.Theme,
		Intent:      string(in.IntentType),
		Total:       in.TotalCount,
	}

	shown := make(map[string]bool)
	for i, a := range in.Main {
		if len(v.Main) >= r.mainCap {
			break
		}
		shown[urls.CanonicalKey(a.URL)] = true
		v.Main = append(v.Main, r.article(i, a, in.Theme))
	}

	for _, a := range in.Supplementary {
		if len(v.Supplementary) >= r.supplementaryCap {
			break
		}
		key := urls.CanonicalKey(a.URL)
		if shown[key] {
			continue
		}
		shown[key] = true
		v.Supplementary = append(v.Supplementary, r.article(-1, a, in.Theme))
	}

	return v
}

func (r *Renderer) article(index int, a domain.EnrichedArticle, theme string) articleView {
	view := articleView{
		Emoji:        "📌",
		Title:        a.Title,
		URL:          a.URL,
		Description:  a.Description,
		Image:        a.Thumbnail,
		HasThumbnail: a.Thumbnail != "",
		Source:       a.Source,
	}
	if index >= 0 && index < len(emojis) {
		view.Emoji = emojis[index]
	}
	if view.Image == "" {
		view.Image = placeholderImage + url.QueryEscape(theme)
	}
	if a.Age != unknownDate {
		view.Age = a.Age
	}
	if view.Source == "" {
		view.Source = unknownSource
	}
	return view
}
