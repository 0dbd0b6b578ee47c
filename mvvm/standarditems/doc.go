// standarditems provides the usual building blocks of a session tree: plain properties, compounds,
// containers, vectors, axes, one-dimensional data and graphs in viewports.
//
// Each kind is a factory producing a *mvvm.SessionItem with its tags and default properties, and a small
// view type (Vector, FixedBinAxis, Graph, ...) for reading and changing it. View types hold only the item
// pointer; all state lives in the item, so they work equally on items restored from a document.
//
//  catalogue := standarditems.NewCatalogue()
//  model := mvvm.NewSessionModel("GraphModel", mvvm.WithCatalogue(catalogue))
//  item, _ := model.InsertNewItem(standarditems.VectorType, nil, mvvm.Append(""))
//  vector, _ := standarditems.AsVector(item)
//  vector.SetX(1.5)
//
// Changes made through view types on items in a model go through the model, and are undoable.
package standarditems
