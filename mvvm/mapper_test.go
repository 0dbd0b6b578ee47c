package mvvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	kind   string
	item   *SessionItem
	tagrow TagRow
	role   int
}

type recorder struct {
	events []notification
}

func (r *recorder) subscribe(mapper *ModelMapper) {
	mapper.SetOnDataChange(func(item *SessionItem, role int) {
		r.events = append(r.events, notification{kind: "data", item: item, role: role})
	}, r)
	mapper.SetOnItemInserted(func(parent *SessionItem, tagrow TagRow) {
		r.events = append(r.events, notification{kind: "inserted", item: parent, tagrow: tagrow})
	}, r)
	mapper.SetOnAboutToRemoveItem(func(parent *SessionItem, tagrow TagRow) {
		r.events = append(r.events, notification{kind: "aboutToRemove", item: parent, tagrow: tagrow})
	}, r)
	mapper.SetOnItemRemoved(func(parent *SessionItem, tagrow TagRow) {
		r.events = append(r.events, notification{kind: "removed", item: parent, tagrow: tagrow})
	}, r)
	mapper.SetOnModelReset(func(*SessionModel) {
		r.events = append(r.events, notification{kind: "reset"})
	}, r)
}

func (r *recorder) kinds() []string {
	var kinds []string
	for _, e := range r.events {
		kinds = append(kinds, e.kind)
	}
	return kinds
}

func TestModelMapperNotifications(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()))
	r := &recorder{}
	r.subscribe(model.Mapper())
	root := model.RootItem()

	item, err := model.InsertNewItem("Property", nil, Append(""))
	require.NoError(t, err)
	assert.Equal(t, []notification{{kind: "inserted", item: root, tagrow: TagRow{RootTag, 0}}}, r.events)

	r.events = nil
	_, err = model.SetData(item, RoleData, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []notification{{kind: "data", item: item, role: RoleData}}, r.events)

	r.events = nil
	model.SetData(item, RoleData, 1.0)
	assert.Empty(t, r.events, "unchanged value is not notified")

	r.events = nil
	require.NoError(t, model.RemoveItem(nil, TagRow{RootTag, 0}))
	assert.Equal(t, []notification{
		{kind: "aboutToRemove", item: root, tagrow: TagRow{RootTag, 0}},
		{kind: "removed", item: root, tagrow: TagRow{RootTag, 0}},
	}, r.events)

	r.events = nil
	model.Clear()
	assert.Equal(t, []string{"reset"}, r.kinds())
}

func TestModelMapperMoveNotifications(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()))
	a, _ := model.InsertNewItem("Container", nil, Append(""))
	b, _ := model.InsertNewItem("Container", nil, Append(""))
	child, _ := model.InsertNewItem("Property", a, Append(""))

	r := &recorder{}
	r.subscribe(model.Mapper())
	require.NoError(t, model.MoveItem(child, b, Append("")))
	assert.Equal(t, []notification{
		{kind: "aboutToRemove", item: a, tagrow: TagRow{"items", 0}},
		{kind: "removed", item: a, tagrow: TagRow{"items", 0}},
		{kind: "inserted", item: b, tagrow: TagRow{"items", 0}},
	}, r.events)
}

func TestModelMapperOrderAndUnsubscribe(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()))
	var order []string
	first, second := &recorder{}, &recorder{}
	model.Mapper().SetOnItemInserted(func(*SessionItem, TagRow) { order = append(order, "first") }, first)
	model.Mapper().SetOnItemInserted(func(*SessionItem, TagRow) { order = append(order, "second") }, second)
	assert.Equal(t, 2, model.Mapper().SubscriberCount())

	model.InsertNewItem("Property", nil, Append(""))
	assert.Equal(t, []string{"first", "second"}, order)

	model.Mapper().Unsubscribe(first)
	order = nil
	model.InsertNewItem("Property", nil, Append(""))
	assert.Equal(t, []string{"second"}, order)
	assert.Equal(t, 1, model.Mapper().SubscriberCount())
}

func TestModelMapperInactive(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()))
	r := &recorder{}
	r.subscribe(model.Mapper())

	model.Mapper().SetActive(false)
	item, _ := model.InsertNewItem("Property", nil, Append(""))
	model.SetData(item, RoleData, 5.0)
	model.Clear()
	assert.Empty(t, r.events)

	model.Mapper().SetActive(true)
	model.InsertNewItem("Property", nil, Append(""))
	assert.Equal(t, []string{"inserted"}, r.kinds())
}
