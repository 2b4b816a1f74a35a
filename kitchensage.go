// Package kitchensage provides a local recipe library built from Paprika
// HTML exports. It extracts normalized recipes from exported documents,
// stores them, groups them into meal plans, and consolidates the
// ingredients of a meal plan into a single shopping list.
//
// This package contains domain types, interfaces, and the dependency-free
// extraction and consolidation logic. Implementations live in subdirectories
// named after their primary dependency (e.g., sqlite/, goquery/, etree/).
package kitchensage
