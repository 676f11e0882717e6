package profile

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a profile compilation error with source position when the
// CUE evaluator can supply one.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compile parses a CUE value into a Profile. Uses the CUE SDK's Go API
// directly (not a CLI subprocess).
//
// The CUE value should be the profile struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`profile: { name: "superstars", ... }`)
//	p, err := profile.Compile(v.LookupPath(cue.ParsePath("profile")))
func Compile(v cue.Value) (*Profile, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &Profile{}

	var err error
	if p.Name, err = requiredString(v, "name"); err != nil {
		return nil, err
	}
	if p.Process, err = stringList(v, "process"); err != nil {
		return nil, err
	}
	if p.GameScenes, err = stringList(v, "gameScenes"); err != nil {
		return nil, err
	}
	if p.Bosses, err = stringList(v, "bosses"); err != nil {
		return nil, err
	}
	if p.Loading, err = parseLoading(v); err != nil {
		return nil, err
	}
	if p.Start, err = parseStartTriggers(v); err != nil {
		return nil, err
	}
	if p.Reset, err = parseReset(v); err != nil {
		return nil, err
	}
	if p.FinalStage, err = optionalUint32(v, "finalStage"); err != nil {
		return nil, err
	}
	if p.Modes, err = parseModes(v); err != nil {
		return nil, err
	}

	if errs := p.Validate(); len(errs) > 0 {
		return nil, &CompileError{
			Field:   "profile",
			Message: errs[0].Error(),
			Pos:     v.Pos(),
		}
	}

	return p, nil
}

func parseLoading(v cue.Value) (LoadingSignal, error) {
	sig := LoadingSignal{}

	lv := v.LookupPath(cue.ParsePath("loading"))
	if !lv.Exists() {
		return sig, &CompileError{
			Field:   "loading",
			Message: "loading signal binding is required",
			Pos:     v.Pos(),
		}
	}

	kind, err := requiredString(lv, "signal")
	if err != nil {
		return sig, err
	}
	sig.Kind = LoadingKind(kind)

	if scenes := lv.LookupPath(cue.ParsePath("scenes")); scenes.Exists() {
		if sig.Scenes, err = stringList(lv, "scenes"); err != nil {
			return sig, err
		}
	}
	if sig.MenuLevel, err = optionalUint32(lv, "menuLevel"); err != nil {
		return sig, err
	}

	return sig, nil
}

func parseStartTriggers(v cue.Value) ([]StartTrigger, error) {
	sv := v.LookupPath(cue.ParsePath("start"))
	if !sv.Exists() {
		return nil, nil
	}

	var out []StartTrigger
	iter, err := sv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		item := iter.Value()
		t := StartTrigger{}

		kind, err := requiredString(item, "trigger")
		if err != nil {
			return nil, err
		}
		t.Kind = StartKind(kind)

		if t.Toggle, err = requiredString(item, "toggle"); err != nil {
			return nil, err
		}
		if t.Mode, err = optionalString(item, "mode"); err != nil {
			return nil, err
		}
		if t.Value, err = optionalUint32(item, "value"); err != nil {
			return nil, err
		}
		if t.MenuScene, err = optionalString(item, "menu"); err != nil {
			return nil, err
		}
		if t.NextScene, err = optionalString(item, "next"); err != nil {
			return nil, err
		}

		out = append(out, t)
	}
	return out, nil
}

func parseReset(v cue.Value) (ResetTrigger, error) {
	t := ResetTrigger{Kind: ResetNone}

	rv := v.LookupPath(cue.ParsePath("reset"))
	if !rv.Exists() {
		return t, nil
	}

	kind, err := requiredString(rv, "trigger")
	if err != nil {
		return t, err
	}
	t.Kind = ResetKind(kind)

	if t.Scene, err = optionalString(rv, "scene"); err != nil {
		return t, err
	}
	if t.Toggle, err = optionalString(rv, "toggle"); err != nil {
		return t, err
	}
	return t, nil
}

func parseModes(v cue.Value) ([]Mode, error) {
	mv := v.LookupPath(cue.ParsePath("modes"))
	if !mv.Exists() {
		return nil, &CompileError{
			Field:   "modes",
			Message: "at least one mode branch is required",
			Pos:     v.Pos(),
		}
	}

	var out []Mode
	iter, err := mv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		item := iter.Value()
		m := Mode{}

		if m.Name, err = requiredString(item, "name"); err != nil {
			return nil, err
		}
		if m.ID, err = optionalUint32(item, "id"); err != nil {
			return nil, err
		}
		if m.Final, err = optionalString(item, "final"); err != nil {
			return nil, err
		}
		if m.Boss, err = optionalString(item, "boss"); err != nil {
			return nil, err
		}

		if ta := item.LookupPath(cue.ParsePath("timeAttack")); ta.Exists() {
			b, err := ta.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
			m.TimeAttack = b
		}

		if m.Splits, err = parseSplits(item); err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	if len(out) == 0 {
		return nil, &CompileError{
			Field:   "modes",
			Message: "at least one mode branch is required",
			Pos:     mv.Pos(),
		}
	}
	return out, nil
}

// parseSplits reads the level table. CUE struct keys are strings, so level
// ids arrive as decimal strings and are parsed here.
func parseSplits(v cue.Value) (map[uint32]string, error) {
	sv := v.LookupPath(cue.ParsePath("splits"))
	if !sv.Exists() {
		return nil, nil
	}

	out := make(map[uint32]string)
	iter, err := sv.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		key := iter.Selector().Unquoted()
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, &CompileError{
				Field:   "splits",
				Message: fmt.Sprintf("level id %q is not a decimal integer", key),
				Pos:     iter.Value().Pos(),
			}
		}
		toggle, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if prev, dup := out[uint32(id)]; dup {
			return nil, &CompileError{
				Field:   "splits",
				Message: fmt.Sprintf("level id %d mapped twice (%q)", id, prev),
				Pos:     iter.Value().Pos(),
			}
		}
		out[uint32(id)] = toggle
	}
	return out, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalUint32(v cue.Value, field string) (uint32, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, nil
	}
	i, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if i < 0 || i > int64(^uint32(0)) {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("value %d out of range for u32", i),
			Pos:     fv.Pos(),
		}
	}
	return uint32(i), nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
