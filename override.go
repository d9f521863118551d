package tether

import "reflect"

// Override interfaces let a target type steer binding without struct tags
// on every slot. The binder checks for them on *T.

// Tagged supplies struct-tag style metadata for setter methods, which Go
// cannot annotate directly. Keys are method names, values are tags in the
// usual `name:"value"` syntax:
//
//	func (*Config) PropertyTags() map[string]reflect.StructTag {
//	    return map[string]reflect.StructTag{
//	        "SetDSN": `property:"db.url" mask:"url"`,
//	    }
//	}
//
// PropertyTags is called once on a zero value while the wrapper for the type
// is built, so it must not depend on instance state.
type Tagged interface {
	PropertyTags() map[string]reflect.StructTag
}

// Constructor is called on a freshly allocated target during Init. It plays
// the role of a no-argument constructor: set defaults, allocate maps. A
// returned error (or a panic) fails Init.
type Constructor interface {
	Construct() error
}

// PropertySetter receives keys that no field or setter claims. Return true
// when the key was consumed; a non-nil error is reported like any other
// per-key failure.
type PropertySetter interface {
	SetProperty(key, value string) (bool, error)
}
