// Package demo seeds a namespace with a small class/instance/association
// graph and drives every operation category once, printing results via
// log/slog, for manual verification of the library.
package demo

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.datum.net/cimrepo/internal/responder"
	"go.datum.net/cimrepo/pkg/cim"
)

const namespace = "root/cimv2"

// NewCommand returns the demo subcommand.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a namespace and exercise every operation category once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(slog.New(slog.NewTextHandler(os.Stdout, nil)))
		},
	}
	return cmd
}

func run(log *slog.Logger) error {
	r := responder.New("localhost", false)
	if err := r.Namespaces().Add(namespace); err != nil {
		return err
	}
	if err := seedQualifiers(r); err != nil {
		return err
	}
	if err := seedSchema(r); err != nil {
		return err
	}
	a1, b1, err := seedInstances(r)
	if err != nil {
		return err
	}

	log.Info("class hierarchy", slog.Any("root classes", mustNames(r.EnumerateClassNames(namespace, "", false))))

	insts, err := r.EnumerateInstances(namespace, "CIM_A", true, true, responder.InstanceShapeOptions{})
	if err != nil {
		return err
	}
	log.Info("instances of CIM_A", slog.Int("count", len(insts)))

	_, paths, err := r.AssociatorNames(namespace, false, "", a1, "", "", "left", "right")
	if err != nil {
		return err
	}
	log.Info("associators of a1 via left/right", slog.Int("count", len(paths)))

	page, err := r.OpenEnumerateInstances(namespace, "CIM_A", false, true, responder.InstanceShapeOptions{}, responder.OpenOptions{MaxObjectCount: 1})
	if err != nil {
		return err
	}
	log.Info("opened enumeration", slog.Bool("end_of_sequence", page.EndOfSequence), slog.String("context_id", page.ContextID))
	if page.ContextID != "" {
		if err := r.CloseEnumeration(namespace, page.ContextID); err != nil {
			return err
		}
	}

	fmt.Printf("seeded %s with CIM_A/CIM_B/CIM_AtoB, a1=%v b1=%v\n", namespace, a1.StoreKey(), b1.StoreKey())
	return nil
}

func mustNames(names []string, err error) []string {
	if err != nil {
		return nil
	}
	return names
}

// literalQualifierSource lists three qualifier declarations, the two
// well-known ones this module recognizes (Key, Association) plus
// Description, which seedQualifiers stores through SetQualifier in place of
// the MOF-parser bootstrap spec.md §1 places out of scope.
type literalQualifierSource struct{}

func (literalQualifierSource) declarations() []*cim.QualifierDeclaration {
	return []*cim.QualifierDeclaration{
		{
			Name:    cim.QualifierKey,
			Type:    cim.TypeBoolean,
			Scopes:  []cim.QualifierScope{cim.ScopeProperty, cim.ScopeReference},
			Flavors: []cim.QualifierFlavor{cim.FlavorDisableOverride, cim.FlavorToSubclass},
			Default: cim.NewBoolean(false),
		},
		{
			Name:    cim.QualifierAssociation,
			Type:    cim.TypeBoolean,
			Scopes:  []cim.QualifierScope{cim.ScopeClass, cim.ScopeAssociation},
			Flavors: []cim.QualifierFlavor{cim.FlavorDisableOverride, cim.FlavorToSubclass},
			Default: cim.NewBoolean(false),
		},
		{
			Name:    "Description",
			Type:    cim.TypeString,
			Scopes:  []cim.QualifierScope{cim.ScopeAny},
			Flavors: []cim.QualifierFlavor{cim.FlavorEnableOverride, cim.FlavorToSubclass},
			Default: cim.NewString(""),
		},
	}
}

func seedQualifiers(r *responder.Responder) error {
	for _, decl := range (literalQualifierSource{}).declarations() {
		if err := r.SetQualifier(namespace, decl); err != nil {
			return err
		}
	}
	return nil
}

func keyProperty(name string) cim.Property {
	return cim.Property{
		Name:       name,
		Value:      cim.NewString(""),
		Qualifiers: qualifierSet(keyQualifier()),
	}
}

func keyQualifier() cim.Qualifier {
	return cim.Qualifier{Name: cim.QualifierKey, Value: cim.NewBoolean(true)}
}

func qualifierSet(qs ...cim.Qualifier) *cim.OrderedMap[cim.Qualifier] {
	m := cim.NewQualifierMap()
	for _, q := range qs {
		m.Set(q.Name, q)
	}
	return m
}

func seedSchema(r *responder.Responder) error {
	a := cim.NewClass("CIM_A", "")
	a.Properties.Set("Name", keyProperty("Name"))
	if err := r.CreateClass(namespace, a); err != nil {
		return err
	}

	b := cim.NewClass("CIM_B", "")
	b.Properties.Set("Name", keyProperty("Name"))
	if err := r.CreateClass(namespace, b); err != nil {
		return err
	}

	assoc := cim.NewClass("CIM_AtoB", "")
	assoc.Qualifiers.Set(cim.QualifierAssociation, cim.Qualifier{Name: cim.QualifierAssociation, Value: cim.NewBoolean(true)})
	assoc.Properties.Set("left", cim.Property{
		Name:       "left",
		Value:      cim.Value{Type: cim.TypeReference, ReferenceClass: "CIM_A"},
		Qualifiers: qualifierSet(keyQualifier()),
	})
	assoc.Properties.Set("right", cim.Property{
		Name:       "right",
		Value:      cim.Value{Type: cim.TypeReference, ReferenceClass: "CIM_B"},
		Qualifiers: qualifierSet(keyQualifier()),
	})
	return r.CreateClass(namespace, assoc)
}

func seedInstances(r *responder.Responder) (a1, b1 *cim.InstanceName, err error) {
	aInst := cim.NewInstance("CIM_A")
	aInst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("a1")})
	a1, err = r.CreateInstance(namespace, aInst)
	if err != nil {
		return nil, nil, err
	}

	bInst := cim.NewInstance("CIM_B")
	bInst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("b1")})
	b1, err = r.CreateInstance(namespace, bInst)
	if err != nil {
		return nil, nil, err
	}

	link := cim.NewInstance("CIM_AtoB")
	link.Properties.Set("left", cim.Property{Name: "left", Value: cim.NewReference("CIM_A", a1)})
	link.Properties.Set("right", cim.Property{Name: "right", Value: cim.NewReference("CIM_B", b1)})
	if _, err := r.CreateInstance(namespace, link); err != nil {
		return nil, nil, err
	}

	return a1, b1, nil
}
