// Package classops implements Class Operations (spec.md §4.4):
// enumerate/get/create/delete class, subclass/superclass walks, and the
// LocalOnly/IncludeQualifiers/IncludeClassOrigin/PropertyList shaping
// shared with instance reads.
package classops

import (
	"strings"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/schemaresolver"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// Ops implements class-level operations against a Store, resolving new
// classes through a schemaresolver.Resolver.
type Ops struct {
	store    *store.Store
	resolver *schemaresolver.Resolver
}

// New returns an Ops backed by s and r.
func New(s *store.Store, r *schemaresolver.Resolver) *Ops {
	return &Ops{store: s, resolver: r}
}

// SuperclassChain returns the classnames from className's root ancestor
// down to and including className, by walking Superclass pointers.
func (o *Ops) SuperclassChain(ns, className string) ([]string, error) {
	var chain []string
	current := className
	seen := map[string]bool{}
	for current != "" {
		lower := strings.ToLower(current)
		if seen[lower] {
			break // defensive: cycles cannot arise per invariant, but never loop forever
		}
		seen[lower] = true
		c, err := o.store.GetClass(ns, current)
		if err != nil {
			return nil, err
		}
		chain = append([]string{c.Name}, chain...)
		current = c.Superclass
	}
	return chain, nil
}

// DirectSubclasses returns the classes whose Superclass matches className
// case-insensitively. When className is "", it returns the root classes
// (those with no superclass).
func (o *Ops) DirectSubclasses(ns, className string) ([]*cim.Class, error) {
	all, err := o.store.IterClasses(ns)
	if err != nil {
		return nil, err
	}
	var out []*cim.Class
	for _, c := range all {
		if className == "" {
			if !c.HasSuperclass() {
				out = append(out, c)
			}
			continue
		}
		if strings.EqualFold(c.Superclass, className) {
			out = append(out, c)
		}
	}
	return out, nil
}

// DeepSubclasses returns the transitive closure of className's
// subclasses (not including className itself).
func (o *Ops) DeepSubclasses(ns, className string) ([]*cim.Class, error) {
	var out []*cim.Class
	queue := []string{className}
	seen := map[string]bool{}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		children, err := o.DirectSubclasses(ns, next)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			key := strings.ToLower(c.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
			queue = append(queue, c.Name)
		}
	}
	return out, nil
}

// DeepSubclassNameSet returns the lower-cased names of className and every
// class transitively derived from it, for use as a membership filter
// (spec.md §4.4 DeleteClass, §4.5 EnumerateInstances).
func (o *Ops) DeepSubclassNameSet(ns, className string) (map[string]bool, error) {
	set := map[string]bool{strings.ToLower(className): true}
	deep, err := o.DeepSubclasses(ns, className)
	if err != nil {
		return nil, err
	}
	for _, c := range deep {
		set[strings.ToLower(c.Name)] = true
	}
	return set, nil
}

// ShapeOptions controls the filtering EnumerateClasses/GetClass (and,
// analogously, instance reads) apply to a class before returning it.
type ShapeOptions struct {
	LocalOnly          bool
	IncludeQualifiers  bool
	IncludeClassOrigin bool
	// PropertyList is applied only when HasPropertyList is true: it then
	// keeps just the named properties, so an empty or nil list keeps none.
	// With HasPropertyList false every property is kept.
	PropertyList    []string
	HasPropertyList bool
}

// Shape applies spec.md §4.4's four-step filtering, in order, to an
// already-cloned class c and returns it.
func Shape(c *cim.Class, opts ShapeOptions) *cim.Class {
	if opts.LocalOnly {
		dropPropagated(c)
	}
	if opts.HasPropertyList {
		filterProperties(c, opts.PropertyList)
	}
	if !opts.IncludeQualifiers {
		stripQualifiers(c)
	}
	if !opts.IncludeClassOrigin {
		clearClassOrigin(c)
	}
	return c
}

func dropPropagated(c *cim.Class) {
	for _, name := range c.Properties.Keys() {
		if p, ok := c.Properties.Get(name); ok && p.Propagated {
			c.Properties.Delete(name)
		}
	}
	for _, name := range c.Methods.Keys() {
		if m, ok := c.Methods.Get(name); ok && m.Propagated {
			c.Methods.Delete(name)
		}
	}
}

// filterProperties keeps only the named properties, case-insensitively,
// de-duplicating the requested list. An empty (but non-nil) list keeps
// none.
func filterProperties(c *cim.Class, propertyList []string) {
	keep := map[string]bool{}
	for _, name := range propertyList {
		keep[strings.ToLower(name)] = true
	}
	for _, name := range c.Properties.Keys() {
		if !keep[strings.ToLower(name)] {
			c.Properties.Delete(name)
		}
	}
}

func stripQualifiers(c *cim.Class) {
	c.Qualifiers = cim.NewQualifierMap()
	for _, name := range c.Properties.Keys() {
		p, _ := c.Properties.Get(name)
		p.Qualifiers = cim.NewQualifierMap()
		c.Properties.Set(name, p)
	}
	for _, name := range c.Methods.Keys() {
		m, _ := c.Methods.Get(name)
		m.Qualifiers = cim.NewQualifierMap()
		for _, pname := range m.Parameters.Keys() {
			param, _ := m.Parameters.Get(pname)
			param.Qualifiers = cim.NewQualifierMap()
			m.Parameters.Set(pname, param)
		}
		c.Methods.Set(name, m)
	}
}

func clearClassOrigin(c *cim.Class) {
	for _, name := range c.Properties.Keys() {
		p, _ := c.Properties.Get(name)
		p.ClassOrigin = ""
		c.Properties.Set(name, p)
	}
	for _, name := range c.Methods.Keys() {
		m, _ := c.Methods.Get(name)
		m.ClassOrigin = ""
		c.Methods.Set(name, m)
	}
}

// GetClass returns className shaped per opts. It fails CIM_ERR_NOT_FOUND if
// absent (spec.md §4.4).
func (o *Ops) GetClass(ns, className string, opts ShapeOptions) (*cim.Class, error) {
	c, err := o.store.GetClass(ns, className)
	if err != nil {
		return nil, err
	}
	return Shape(c, opts), nil
}

// EnumerateClasses returns className's subclasses (or, if className is
// empty, the root classes), one level deep by default or transitively when
// deepInheritance is true, shaped per opts. It fails CIM_ERR_INVALID_CLASS
// if className is given but absent.
func (o *Ops) EnumerateClasses(ns, className string, deepInheritance bool, opts ShapeOptions) ([]*cim.Class, error) {
	if className != "" {
		exists, err := o.store.ClassExists(ns, className)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, cimerrors.InvalidClassErr("class %q not found in namespace %q", className, ns)
		}
	}

	var classes []*cim.Class
	var err error
	if deepInheritance {
		classes, err = o.DeepSubclasses(ns, className)
	} else {
		classes, err = o.DirectSubclasses(ns, className)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*cim.Class, 0, len(classes))
	for _, c := range classes {
		out = append(out, Shape(c, opts))
	}
	return out, nil
}

// EnumerateClassNames is EnumerateClasses without the class bodies.
func (o *Ops) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	classes, err := o.EnumerateClasses(ns, className, deepInheritance, ShapeOptions{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	return names, nil
}

// CreateClass resolves newClass (spec.md §4.3) and stores the resolved
// copy. It fails CIM_ERR_ALREADY_EXISTS if a class with the same name is
// already present, and CIM_ERR_INVALID_SUPERCLASS if the declared
// superclass does not exist.
func (o *Ops) CreateClass(ns string, newClass *cim.Class) error {
	if exists, err := o.store.ClassExists(ns, newClass.Name); err != nil {
		return err
	} else if exists {
		return cimerrors.AlreadyExistsErr("class %q already exists in namespace %q", newClass.Name, ns)
	}

	resolved, err := o.resolver.Resolve(ns, newClass)
	if err != nil {
		return err
	}
	return o.store.CreateClass(ns, resolved)
}

// ModifyClass is explicitly unsupported (spec.md §4.4).
func (o *Ops) ModifyClass(ns string, modifiedClass *cim.Class) error {
	return cimerrors.NotSupportedErr("ModifyClass is not supported")
}

// DeleteClass computes className's deep subclass set (including itself),
// deletes every instance whose classname falls in that set, then deletes
// every class in descending-depth order (deepest first, so a class is
// always deleted before its ancestors). It fails CIM_ERR_NOT_FOUND if
// className itself is absent. Referential integrity across reference
// properties is not enforced (spec.md §4.4, an intentional non-goal).
func (o *Ops) DeleteClass(ns, className string) error {
	if exists, err := o.store.ClassExists(ns, className); err != nil {
		return err
	} else if !exists {
		return cimerrors.NotFoundErr("class %q not found in namespace %q", className, ns)
	}

	deep, err := o.DeepSubclasses(ns, className)
	if err != nil {
		return err
	}
	target, err := o.store.GetClass(ns, className)
	if err != nil {
		return err
	}
	all := append(deep, target)

	nameSet := map[string]bool{}
	for _, c := range all {
		nameSet[strings.ToLower(c.Name)] = true
	}
	if err := o.store.DeleteInstancesOfClasses(ns, nameSet); err != nil {
		return err
	}

	depth := map[string]int{}
	for _, c := range all {
		depth[strings.ToLower(c.Name)] = classDepth(c, all)
	}
	order := append([]*cim.Class(nil), all...)
	sortByDescendingDepth(order, depth)

	for _, c := range order {
		if err := o.store.DeleteClass(ns, c.Name); err != nil {
			return err
		}
	}
	return nil
}

func classDepth(c *cim.Class, all []*cim.Class) int {
	byName := map[string]*cim.Class{}
	for _, x := range all {
		byName[strings.ToLower(x.Name)] = x
	}
	depth := 0
	current := c
	for current.HasSuperclass() {
		parent, ok := byName[strings.ToLower(current.Superclass)]
		if !ok {
			break
		}
		depth++
		current = parent
	}
	return depth
}

func sortByDescendingDepth(classes []*cim.Class, depth map[string]int) {
	for i := 1; i < len(classes); i++ {
		j := i
		for j > 0 && depth[strings.ToLower(classes[j-1].Name)] < depth[strings.ToLower(classes[j].Name)] {
			classes[j-1], classes[j] = classes[j], classes[j-1]
			j--
		}
	}
}
