// Package locale renders parser and balancer errors as localized text.
//
// Messages are registered in an x/text catalog under the same keys the
// errors carry in their MessageKey field. Substitutions "$1", "$2", ... from
// an error's Details map become positional arguments %[1]s, %[2]s, ...
package locale

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/parser"
)

// Supported lists the languages with a complete catalog, default first.
var Supported = []language.Tag{language.English, language.SimplifiedChinese}

var (
	matcher = language.NewMatcher(Supported)
	cat     = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() {
	for tag, table := range tables {
		for key, msg := range table {
			if err := cat.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("locale: register %s/%s: %v", tag, key, err))
			}
		}
	}
}

// Match returns the supported tag closest to the BCP 47 language string s.
// Unknown or malformed input yields English.
func Match(s string) language.Tag {
	t, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// MatchAccept returns the supported tag best matching an Accept-Language
// header value. An empty or malformed header yields English.
func MatchAccept(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Message renders key in tag with details as positional substitutions.
func Message(tag language.Tag, key string, details map[string]string) string {
	p := message.NewPrinter(tag, message.Catalog(cat))
	return p.Sprintf(key, args(details)...)
}

// Describe renders err. Parser and balance errors are localized; any other
// error falls back to its Error text.
func Describe(tag language.Tag, err error) string {
	var pe *parser.Error
	if errors.As(err, &pe) {
		return Message(tag, pe.MessageKey, pe.Details)
	}
	var be *balance.Error
	if errors.As(err, &be) {
		return Message(tag, be.MessageKey, be.Details)
	}
	return err.Error()
}

// args orders "$n" details by n.
func args(details map[string]string) []any {
	type kv struct {
		n int
		v string
	}
	var ordered []kv
	for k, v := range details {
		n, err := strconv.Atoi(strings.TrimPrefix(k, "$"))
		if err != nil || !strings.HasPrefix(k, "$") {
			continue
		}
		ordered = append(ordered, kv{n, v})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].n < ordered[j].n })
	out := make([]any, len(ordered))
	for i, o := range ordered {
		out[i] = o.v
	}
	return out
}
