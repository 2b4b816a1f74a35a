// Package etree reads and writes shopping lists as XML documents.
package etree

import (
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/kitchensage"
)

// WriteShoppingList writes the consolidated ingredients of a plan as XML:
//
//	<shoppingList plan="Week 1">
//	  <item quantity="3" unit="cups">Flour</item>
//	</shoppingList>
//
// Absent quantities and units are omitted.
func WriteShoppingList(w io.Writer, plan string, items []kitchensage.ConsolidatedIngredient) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("shoppingList")
	root.CreateAttr("plan", plan)
	for _, item := range items {
		el := root.CreateElement("item")
		if item.Quantity != "" {
			el.CreateAttr("quantity", item.Quantity)
		}
		if item.Unit != "" {
			el.CreateAttr("unit", item.Unit)
		}
		el.SetText(item.Name)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// ReadShoppingList parses a document written by WriteShoppingList.
// Returns EINVALID for malformed XML or a missing shoppingList element.
func ReadShoppingList(r io.Reader) (plan string, items []kitchensage.ConsolidatedIngredient, err error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return "", nil, kitchensage.Errorf(kitchensage.EINVALID, "failed to parse shopping list: %v", err)
	}

	root := doc.SelectElement("shoppingList")
	if root == nil {
		return "", nil, kitchensage.Errorf(kitchensage.EINVALID, "missing shoppingList element")
	}

	plan = root.SelectAttrValue("plan", "")
	for _, el := range root.SelectElements("item") {
		items = append(items, kitchensage.ConsolidatedIngredient{
			Name:     el.Text(),
			Quantity: el.SelectAttrValue("quantity", ""),
			Unit:     el.SelectAttrValue("unit", ""),
		})
	}
	return plan, items, nil
}
