package types

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Entry pairs a registered type with where it was defined. Built-ins carry
// no origin.
type Entry struct {
	Type      Type
	DefinedBy string // external defining element reference, "" for built-ins
	Line      int
}

// Registry is a symbol table mapping type names and variable names to type
// descriptors. Type definitions are keyed ":name", variable associations by
// the bare variable name, so both live in one map without collision.
//
// There is one process-wide global layer holding exactly the built-in
// primitives. It is created once, on first use, and copied (never
// referenced) into every new local registry: local mutations cannot perturb
// the defaults or other registries. A local registry belongs to one
// analysis context and is not safe for concurrent mutation.
type Registry struct {
	typeMap map[string]Entry
}

var globalOnce sync.Once
var globalMap map[string]Entry

func globalLayer() map[string]Entry {
	globalOnce.Do(func() {
		prims := []*PrimitiveType{
			newPrimitive("boolean", false, primBool),
			newPrimitive("byte", int8(0), primIntegral),
			newPrimitive("short", int16(0), primIntegral),
			newPrimitive("int", int32(0), primIntegral),
			newPrimitive("long", int64(0), primIntegral),
			newPrimitive("ubyte", uint8(0), primUnsigned),
			newPrimitive("ushort", uint16(0), primUnsigned),
			newPrimitive("uint", uint32(0), primUnsigned),
			newPrimitive("ulong", uint64(0), primUnsigned),
			newPrimitive("float", float32(0), primFloating),
			newPrimitive("double", float64(0), primFloating),
			newPrimitive("char", "\x00", primChar),
			newPrimitive("string", "", primString),
		}
		globalMap = make(map[string]Entry, len(prims)+1)
		globalMap[":"+dummyName] = Entry{Type: Dummy()}
		for _, p := range prims {
			globalMap[":"+p.Name()] = Entry{Type: p}
		}
		tracer().Infof("type registry global layer created, %d entries", len(globalMap))
	})
	return globalMap
}

// NewRegistry creates a local registry pre-seeded with a copy of the global
// built-in layer.
func NewRegistry() *Registry {
	global := globalLayer()
	r := &Registry{typeMap: make(map[string]Entry, len(global)+16)}
	for k, v := range global {
		r.typeMap[k] = v
	}
	return r
}

// StandardType returns the built-in primitive with the given name, or nil.
func StandardType(name string) Type {
	if e, ok := globalLayer()[":"+name]; ok {
		return e.Type
	}
	return nil
}

// GetType retrieves the type registered under typeName, or nil.
func (r *Registry) GetType(typeName string) Type {
	if e, ok := r.typeMap[":"+typeName]; ok {
		return e.Type
	}
	return nil
}

// GetEntry retrieves the full registration entry for typeName.
func (r *Registry) GetEntry(typeName string) (Entry, bool) {
	e, ok := r.typeMap[":"+typeName]
	return e, ok
}

// GetTypeFor retrieves the type associated with a variable name, or nil.
func (r *Registry) GetTypeFor(varName string) Type {
	if e, ok := r.typeMap[varName]; ok {
		return e.Type
	}
	return nil
}

// PutType registers a type under its own name. The registration is refused
// (a no-op) if the type is anonymous or a different type is already
// registered under the name; force overrides both restrictions. Built-in
// names can never be overridden. The returned value is the entry actually
// stored on success, or the pre-existing conflicting entry on refusal;
// callers log and proceed, nothing is thrown.
func (r *Registry) PutType(t Type, force bool) Type {
	return r.Define(t, "", 0, force)
}

// Define registers like PutType, additionally recording the defining
// element and line.
func (r *Registry) Define(t Type, definedBy string, line int, force bool) Type {
	if t == nil {
		return nil
	}
	name := t.Name()
	if std := StandardType(name); std != nil {
		tracer().Debugf("refusing to override built-in type %s", name)
		return std
	}
	key := ":" + name
	if prev, ok := r.typeMap[key]; ok && prev.Type != t && !force {
		return prev.Type
	}
	if t.IsAnonymous() && !force {
		return nil
	}
	if base := baseOf(t); base != nil {
		base.registry = r
	}
	r.typeMap[key] = Entry{Type: t, DefinedBy: definedBy, Line: line}
	return t
}

// PutAlias registers an additional synonym name for a type, wrapping it
// into a redirect. Conflict policy as in PutType.
func (r *Registry) PutAlias(aliasName string, t Type, force bool) Type {
	redir, err := NewRedirect(aliasName, t)
	if err != nil {
		tracer().Errorf("cannot create type synonym: %v", err)
		return nil
	}
	return r.PutType(redir, force)
}

// PutTypeFor associates a variable name with a type and ensures the type
// itself is registered. The association is refused if the variable is
// already bound or a different type owns the type's name, unless forced.
// Returns the stored type on success, the conflicting prior association on
// refusal.
func (r *Registry) PutTypeFor(varName string, t Type, force bool) Type {
	if t == nil {
		return nil
	}
	if prev, ok := r.typeMap[varName]; ok && prev.Type != t && !force {
		return prev.Type
	}
	if !force {
		if named := r.GetType(t.Name()); named != nil && named != t && !t.IsAnonymous() {
			return named
		}
	}
	r.typeMap[varName] = Entry{Type: t}
	if !t.IsAnonymous() {
		r.PutType(t, false)
	}
	return t
}

// VariableNames returns all variable associations, sorted.
func (r *Registry) VariableNames() []string {
	var names []string
	for k := range r.typeMap {
		if !strings.HasPrefix(k, ":") {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// TypeNames returns all registered type names, sorted.
func (r *Registry) TypeNames() []string {
	var names []string
	for k := range r.typeMap {
		if strings.HasPrefix(k, ":") {
			names = append(names, k[1:])
		}
	}
	sort.Strings(names)
	return names
}

func baseOf(t Type) *typeBase {
	switch v := t.(type) {
	case *PrimitiveType:
		return &v.typeBase
	case *ArrayType:
		return &v.typeBase
	case *RecordType:
		return &v.typeBase
	case *EnumType:
		return &v.typeBase
	case *RedirType:
		return &v.typeBase
	}
	return nil
}

// --- Literal shapes --------------------------------------------------------

var binPattern = regexp.MustCompile(`^0b[01]+$`)
var octPattern = regexp.MustCompile(`^0[0-7]+$`)
var hexPattern = regexp.MustCompile(`^0x[0-9A-Fa-f]+$`)

// Infinity is the literal spelling of the infinity token.
const Infinity = "∞"

// StandardTypeFor decides the built-in type of a literal purely from its
// textual shape. The numeric cascade tries double, then long, then int; the
// last successful parse wins. Undecidable shapes yield the dummy type.
func StandardTypeFor(literal string) Type {
	switch literal {
	case "true", "false":
		return StandardType("boolean")
	case Infinity:
		return StandardType("double")
	}
	if len(literal) >= 2 && strings.HasPrefix(literal, "'") && strings.HasSuffix(literal, "'") {
		// a single (possibly escaped) character is a char, anything longer a
		// string
		if len(literal) == 3 || len(literal) == 4 && literal[1] == '\\' {
			return StandardType("char")
		}
		return StandardType("string")
	}
	if len(literal) > 1 && strings.HasPrefix(literal, "\"") && strings.HasSuffix(literal, "\"") {
		return StandardType("string")
	}
	if binPattern.MatchString(literal) || octPattern.MatchString(literal) ||
		hexPattern.MatchString(literal) {
		return StandardType("int")
	}
	t := Dummy()
	if _, err := strconv.ParseFloat(literal, 64); err == nil {
		t = StandardType("double")
		if _, err := strconv.ParseInt(literal, 10, 64); err == nil {
			t = StandardType("long")
			if _, err := strconv.ParseInt(literal, 10, 32); err == nil {
				t = StandardType("int")
			}
		}
	}
	return t
}

// --- Access paths ----------------------------------------------------------

// PathStep is one hop of a dotted/indexed access path: either a record
// component name or an index access.
type PathStep struct {
	Component string
	Index     bool
}

// TypeAtPath resolves the type reached from a variable along an access path
// of record components and index hops. Unresolvable hops yield the dummy
// type. Used by autocompletion to offer component names.
func (r *Registry) TypeAtPath(varName string, path []PathStep) Type {
	t := r.GetTypeFor(varName)
	if t == nil {
		return Dummy()
	}
	for _, step := range path {
		t = Resolve(t)
		if step.Index {
			at, ok := t.(*ArrayType)
			if !ok {
				return Dummy()
			}
			t = at.ElementType()
			continue
		}
		rt, ok := t.(*RecordType)
		if !ok {
			return Dummy()
		}
		ct := rt.ComponentType(step.Component)
		if ct == nil {
			return Dummy()
		}
		t = ct
	}
	return t
}
