// Package normalize turns loosely typed roster payloads, as exported by the various
// community tools, into canonical model.CharacterRecord values.
//
// Every key is looked up through an alias pair where the capitalized spelling takes
// priority over the camelCase one. Numeric values follow parseInt semantics: the leading
// integer prefix of the value is used, anything else falls back to the field default.
package normalize

import (
	"github.com/samber/lo"

	"exusiai.dev/roster-backend/internal/model"
)

type alias [2]string

func (a alias) lookup(obj map[string]any, usable func(any) bool) (any, bool) {
	for _, key := range a {
		if v, ok := obj[key]; ok && usable(v) {
			return v, true
		}
	}
	return nil, false
}

type intField struct {
	alias alias
	def   int
	set   func(r *model.CharacterRecord, v int)
}

var (
	codeAlias         = alias{"Code", "code"}
	currentLevelAlias = alias{"CurrentLevel", "currentLevel"}

	potentialField = intField{alias{"Potential", "potential"}, 1, func(r *model.CharacterRecord, v int) { r.Potential = v }}

	// levelFields are read from the nested CurrentLevel object.
	levelFields = []intField{
		{alias{"Elite", "elite"}, 0, func(r *model.CharacterRecord, v int) { r.Elite = v }},
		{alias{"Level", "level"}, 1, func(r *model.CharacterRecord, v int) { r.Level = v }},
		{alias{"Skill", "skill"}, 7, func(r *model.CharacterRecord, v int) { r.Skill = v }},
		{alias{"Skill1", "skill1"}, 0, func(r *model.CharacterRecord, v int) { r.Skill1 = v }},
		{alias{"Skill2", "skill2"}, 0, func(r *model.CharacterRecord, v int) { r.Skill2 = v }},
		{alias{"Skill3", "skill3"}, 0, func(r *model.CharacterRecord, v int) { r.Skill3 = v }},
		{alias{"ModuleX", "moduleX"}, 0, func(r *model.CharacterRecord, v int) { r.ModuleX = v }},
		{alias{"ModuleY", "moduleY"}, 0, func(r *model.CharacterRecord, v int) { r.ModuleY = v }},
		{alias{"ModuleD", "moduleD"}, 0, func(r *model.CharacterRecord, v int) { r.ModuleD = v }},
		{alias{"ModuleA", "moduleA"}, 0, func(r *model.CharacterRecord, v int) { r.ModuleA = v }},
	}
)

type Option func(n *Normalizer)

// WithLegacyZero restores the behaviour of the first roster backend, where a parsed zero was
// treated as missing and replaced by the field default, and an alias holding a falsy value
// (0, false) fell through to the other spelling.
func WithLegacyZero() Option {
	return func(n *Normalizer) {
		n.legacyZero = true
	}
}

type Normalizer struct {
	legacyZero bool
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var std = New()

// Normalize normalizes input with the default Normalizer.
func Normalize(input any) []model.CharacterRecord {
	return std.Normalize(input)
}

// Normalize accepts a single object or an array of objects. Elements that are not objects
// or carry no code are dropped; the result may therefore be empty.
func (n *Normalizer) Normalize(input any) []model.CharacterRecord {
	return lo.FilterMap(asSlice(input), func(item any, _ int) (model.CharacterRecord, bool) {
		obj, ok := item.(map[string]any)
		if !ok {
			return model.CharacterRecord{}, false
		}
		return n.record(obj)
	})
}

func (n *Normalizer) record(obj map[string]any) (model.CharacterRecord, bool) {
	code, _ := codeAlias.lookup(obj, truthy)
	r := model.CharacterRecord{Code: jsString(code)}
	if r.Code == "" {
		return r, false
	}

	n.apply(&r, obj, potentialField)

	var level map[string]any
	if v, ok := currentLevelAlias.lookup(obj, truthy); ok {
		level, _ = v.(map[string]any)
	}
	for _, f := range levelFields {
		n.apply(&r, level, f)
	}

	return r, true
}

func (n *Normalizer) apply(r *model.CharacterRecord, obj map[string]any, f intField) {
	usable := present
	if n.legacyZero {
		usable = truthy
	}

	v := f.def
	if raw, ok := f.alias.lookup(obj, usable); ok {
		if parsed, ok := parseInt(jsString(raw)); ok && (parsed != 0 || !n.legacyZero) {
			v = parsed
		}
	}
	f.set(r, v)
}

// Plausible reports whether at least one element carries a code and a level object.
// The level object is only checked for presence, not for validity.
func Plausible(input any) bool {
	if !truthy(input) {
		return false
	}
	return lo.SomeBy(asSlice(input), func(item any) bool {
		obj, ok := item.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := codeAlias.lookup(obj, truthy); !ok {
			return false
		}
		_, ok = currentLevelAlias.lookup(obj, truthy)
		return ok
	})
}

func asSlice(input any) []any {
	if s, ok := input.([]any); ok {
		return s
	}
	return []any{input}
}
