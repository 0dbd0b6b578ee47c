// mvvm holds application state as a tree of items, for views to observe and edit without knowing its content.
//
// Everything in the tree is a SessionItem: a typed node with data stored by role, and children placed in named
// slots called tags. The set of tags and their capacities describe what an item is. A "vector" is simply an item
// with three single-property tags named X, Y and Z, each holding a property item whose RoleData is a number.
//
// Items
//
// Items are assembled before they enter a model. Tags are registered with TagInfo, which limits the number of
// children and their model types. The first tag registered, or the one flagged as default, receives children
// inserted without naming a tag.
//
//  item := mvvm.NewSessionItem("Vector")
//  item.RegisterTag(mvvm.PropertyTag("X", "Property"), false)
//  x := mvvm.NewSessionItem("Property")
//  x.SetValue(1.0)
//  item.InsertItem(x, mvvm.Append("X"))
//
// Values are limited to bool, int, float64, string, []float64 and []byte. Once a role has a value, it keeps its
// type.
//
// Models
//
// SessionModel owns the tree under its root item. Each change made through the model (InsertNewItem,
// RemoveItem, MoveItem, SetData) is a Command. When undo is enabled, commands are recorded on the UndoStack and
// can be undone and redone; commands address items by Path, so they keep working after the items they touched
// were destroyed and rebuilt by an undo.
//
// Within a model, every item is known by its identifier. The identifier survives undo/redo and save/load.
//
// Notifications
//
// ModelMapper delivers model-wide notifications (data changed, item inserted, about to remove, removed, model
// reset and destroyed) synchronously, in subscription order. Subscriptions are made with an owner value, which
// is later used to unsubscribe.
//
// An item in a model also has an ItemMapper, created on first use with SessionItem.Mapper. It narrows the
// notifications to that item and adds property changes of the item and of its children, and the item's own
// destruction. The item mapper goes away with its item.
//
// Persistence
//
// ItemToRecord and ItemFromRecord convert between items and plain records, which serialize to JSON. Records
// carry the structure of the item as well as its data, so documents can be loaded with catalogues that don't
// know every model type. The jsondoc package stores several models in one document.
//
// This package is not safe for concurrent use.
package mvvm
