// Package i18n loads the embedded message catalogs and hands out
// per-locale localizers for chat output and dialogs.
package i18n

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

// BaseLocale is always present and backs every other locale
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

// LoadEmbedded loads the catalogs compiled into the binary
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS reads locales/<locale>/<namespace>.yaml files. The locale
// and namespace inside each file must match its path, and a key may
// only be defined once per locale.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalogs")
	}
	if len(paths) == 0 {
		return nil, errors.Internal("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: make(map[string]map[string]string)}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", p)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog "+p)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, errors.Internalf("base locale %s is not defined", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	b.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range b.Locales() {
		if locale == BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid locale "+locale)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	vb := errors.NewValidationBuilder()
	if strings.TrimSpace(file.Locale) != dirLocale {
		vb.Fieldf("locale", "%q must match path locale %q", file.Locale, dirLocale)
	}
	if strings.TrimSpace(file.Namespace) != fileNamespace {
		vb.Fieldf("namespace", "%q must match file name %q", file.Namespace, fileNamespace)
	}
	if file.Messages == nil {
		vb.RequiredField("messages")
	}
	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "catalog %s", p)
	}

	messages, ok := b.locales[dirLocale]
	if !ok {
		messages = make(map[string]string)
		b.locales[dirLocale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.InvalidArgumentf("catalog %s: blank message key", p)
		}
		if _, dup := messages[key]; dup {
			return errors.InvalidArgumentf("catalog %s: duplicate key %q", p, key)
		}
		messages[key] = value
	}
	return nil
}

// Locales lists loaded locale identifiers
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Match picks the best loaded locale for a list of preferences such as
// an Accept-Language header or "fr". Unknown preferences get the base.
func (b *Bundle) Match(preferred ...string) string {
	if len(preferred) == 0 {
		return BaseLocale
	}
	_, idx := language.MatchStrings(b.matcher, preferred...)
	if idx < 0 || idx >= len(b.tags) {
		return BaseLocale
	}
	return b.tags[idx].String()
}

// Message looks up key in locale, then in the base locale
func (b *Bundle) Message(locale, key string) (string, bool) {
	if messages, ok := b.locales[locale]; ok {
		if v, ok := messages[key]; ok {
			return v, true
		}
	}
	v, ok := b.locales[BaseLocale][key]
	return v, ok
}

// Localizer returns a localizer for the best match of preferred
func (b *Bundle) Localizer(preferred ...string) *Localizer {
	return &Localizer{bundle: b, locale: b.Match(preferred...)}
}

// Localizer resolves keys for one locale
type Localizer struct {
	bundle *Bundle
	locale string
}

// Locale is the matched locale
func (l *Localizer) Locale() string { return l.locale }

// Localize returns the message, or key itself when no catalog has it
func (l *Localizer) Localize(key string) string {
	if v, ok := l.bundle.Message(l.locale, key); ok {
		return v
	}
	return key
}

// LocalizeWithFallback returns fallback when no catalog has key
func (l *Localizer) LocalizeWithFallback(key, fallback string) string {
	if v, ok := l.bundle.Message(l.locale, key); ok {
		return v
	}
	return fallback
}
