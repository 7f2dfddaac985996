package reconcile

import "i18n-sync/core/translation"

func parseForTest(s string) (*translation.Node, error) {
	return translation.ParseTree([]byte(s))
}

func flattenForTest(n *translation.Node) map[string]string {
	return translation.Flatten(n)
}
