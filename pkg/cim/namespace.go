package cim

// Namespace-creation classnames recognized by CreateInstance/DeleteInstance
// (spec.md §4.5, §6), case-insensitively.
const (
	NamespaceClassPG  = "PG_Namespace"
	NamespaceClassCIM = "CIM_Namespace"
)

// Synthetic keys filled in on a namespace-creation instance, and their
// literal values, carried over unchanged from
// original_source/pywbem_mock/_mainprovider.py (the values the original
// implementation hard-codes and a comment there says must stay in sync
// with its own mock WBEM server test fixtures).
const (
	NamespaceKeyName                           = "Name"
	NamespaceKeyCreationClassName               = "CreationClassName"
	NamespaceKeyObjectManagerName               = "ObjectManagerName"
	NamespaceKeyObjectManagerCreationClassName  = "ObjectManagerCreationClassName"
	NamespaceKeySystemName                      = "SystemName"
	NamespaceKeySystemCreationClassName         = "SystemCreationClassName"

	NamespaceValueObjectManagerName              = "MyFakeObjectManager"
	NamespaceValueObjectManagerCreationClassName = "CIM_ObjectManager"
	NamespaceValueSystemName                     = "Mock_Test_WBEMServerTest"
	NamespaceValueSystemCreationClassName         = "CIM_ComputerSystem"
)

// NamespaceCreationClass returns the canonically-cased namespace-creation
// classname matching name case-insensitively, and whether name is one.
func NamespaceCreationClass(name string) (string, bool) {
	switch {
	case EqualFold(name, NamespaceClassPG):
		return NamespaceClassPG, true
	case EqualFold(name, NamespaceClassCIM):
		return NamespaceClassCIM, true
	default:
		return "", false
	}
}
