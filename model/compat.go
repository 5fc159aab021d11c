package model

import "fmt"

// Compatible reports whether next only grows prev: every member, option and
// tuple element of prev is still present with the same type, key flags are
// unchanged, and new non-key members or options may be added. Removing or retyping
// anything requires an explicit migration and yields ErrIncompatibleModel.
func Compatible(prev, next Ty) error {
	if err := compatible(prev, next, prev.Name()); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleModel, err)
	}
	return nil
}

func compatible(prev, next Ty, path string) error {
	if prev.Kind != next.Kind {
		return fmt.Errorf("%s: kind changed from %s to %s", path, prev.Kind, next.Kind)
	}
	switch prev.Kind {
	case KindPrimitive:
		if prev.Primitive.Type != next.Primitive.Type {
			return fmt.Errorf("%s: type changed from %s to %s", path, prev.Primitive.Type, next.Primitive.Type)
		}
	case KindStruct:
		for _, pm := range prev.Struct.Children {
			nm, ok := next.Struct.Member(pm.Name)
			if !ok {
				return fmt.Errorf("%s: member %s removed", path, pm.Name)
			}
			if nm.Key != pm.Key {
				return fmt.Errorf("%s: member %s changed key flag", path, pm.Name)
			}
			if err := compatible(pm.Ty, nm.Ty, path+"."+pm.Name); err != nil {
				return err
			}
		}
		// rows written before the member existed would have no key value
		for _, nm := range next.Struct.Children {
			if _, ok := prev.Struct.Member(nm.Name); !ok && nm.Key {
				return fmt.Errorf("%s: key member %s added", path, nm.Name)
			}
		}
	case KindEnum:
		for _, po := range prev.Enum.Options {
			var found *EnumOption
			for i := range next.Enum.Options {
				if next.Enum.Options[i].Name == po.Name {
					found = &next.Enum.Options[i]
					break
				}
			}
			if found == nil {
				return fmt.Errorf("%s: option %s removed", path, po.Name)
			}
			if err := compatible(po.Ty, found.Ty, path+"::"+po.Name); err != nil {
				return err
			}
		}
	case KindTuple:
		if len(prev.Tuple) != len(next.Tuple) {
			return fmt.Errorf("%s: tuple arity changed from %d to %d", path, len(prev.Tuple), len(next.Tuple))
		}
		for i := range prev.Tuple {
			if err := compatible(prev.Tuple[i], next.Tuple[i], fmt.Sprintf("%s.%d", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
