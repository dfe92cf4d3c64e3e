package analyze

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"fieldpaths/internal/naming"
	"fieldpaths/internal/shape"
)

// TagName is the struct tag key read by the describers.
//
//	Name   string  `fields:"display_name"`        // rename
//	Secret string  `fields:"-"`                   // skip
//	Raw    Payload `fields:",nested=false"`       // keep atomic
//	Meta   Meta    `fields:"meta,opaque"`         // rename + keep atomic
//	_      struct{} `fields:"rename_all=camelCase"` // type-level policy
const TagName = "fields"

// ErrInvalidTag is returned for fields tags that cannot be parsed.
var ErrInvalidTag = errors.New("invalid fields tag")

// ParseFieldTag returns the attributes declared by the fields tag of a struct field.
func ParseFieldTag(tag reflect.StructTag) (shape.Attributes, error) {
	value, ok := tag.Lookup(TagName)
	if !ok {
		return shape.DefaultAttributes(), nil
	}

	return parseFieldTag(value)
}

func parseFieldTag(value string) (shape.Attributes, error) {
	attrs := shape.DefaultAttributes()

	if value == "-" {
		attrs.Skip = true
		return attrs, nil
	}

	name, opts, _ := strings.Cut(value, ",")
	if name = strings.TrimSpace(name); name != "" {
		attrs.Rename, attrs.HasRename = name, true
	}

	nestedSet := false
	setNested := func(v bool) error {
		if nestedSet && attrs.Nested != v {
			return fmt.Errorf("%w %q: conflicting nesting options", ErrInvalidTag, value)
		}

		attrs.Nested, nestedSet = v, true

		return nil
	}

	for opt := range strings.SplitSeq(opts, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		key, val, hasVal := strings.Cut(opt, "=")

		var err error

		switch key {
		case "skip":
			if hasVal {
				return attrs, fmt.Errorf("%w %q: skip takes no value", ErrInvalidTag, value)
			}

			attrs.Skip = true
		case "rename":
			if val == "" {
				return attrs, fmt.Errorf("%w %q: rename expects a name", ErrInvalidTag, value)
			}

			if attrs.HasRename && attrs.Rename != val {
				return attrs, fmt.Errorf("%w %q: conflicting renames %q and %q", ErrInvalidTag, value, attrs.Rename, val)
			}

			attrs.Rename, attrs.HasRename = val, true
		case "nested":
			b := true
			if hasVal {
				b, err = strconv.ParseBool(val)
				if err != nil {
					return attrs, fmt.Errorf("%w %q: nested expects a bool, got %q", ErrInvalidTag, value, val)
				}
			}

			err = setNested(b)
		case "flatten":
			err = setNested(true)
		case "opaque":
			err = setNested(false)
		default:
			return attrs, fmt.Errorf("%w %q: unrecognized attribute %q", ErrInvalidTag, value, key)
		}

		if err != nil {
			return attrs, err
		}
	}

	return attrs, nil
}

// ParsePolicyTag returns the naming policy declared by the fields tag of a
// blank (_) struct field.
func ParsePolicyTag(value string) (shape.Policy, error) {
	var policy shape.Policy

	for opt := range strings.SplitSeq(value, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		key, val, _ := strings.Cut(opt, "=")
		if key != "rename_all" {
			return policy, fmt.Errorf("%w %q: unrecognized type attribute %q", ErrInvalidTag, value, key)
		}

		c, err := naming.Parse(val)
		if err != nil {
			return policy, fmt.Errorf("%w %q: %w", ErrInvalidTag, value, err)
		}

		if policy.RenameAll != naming.None && policy.RenameAll != c {
			return policy, fmt.Errorf("%w %q: conflicting rename_all values", ErrInvalidTag, value)
		}

		policy.RenameAll = c
	}

	return policy, nil
}

// mergePolicy folds a policy declared by another blank field into p.
func mergePolicy(p, other shape.Policy) (shape.Policy, error) {
	if other.RenameAll == naming.None {
		return p, nil
	}

	if p.RenameAll != naming.None && p.RenameAll != other.RenameAll {
		return p, fmt.Errorf("%w: rename_all declared as both %s and %s",
			ErrInvalidTag, p.RenameAll.Name(), other.RenameAll.Name())
	}

	p.RenameAll = other.RenameAll

	return p, nil
}
