package object

// TriggerForEach controls whether a trigger fires once per affected row
// or once per statement.
type TriggerForEach int

const (
	ForEachRow TriggerForEach = iota
	ForEachStatement
)

// TriggerAction is the DML event a trigger fires on.
type TriggerAction int

const (
	TriggerInsert TriggerAction = iota
	TriggerUpdate
	TriggerDelete
)

// TriggerTime controls whether a trigger runs before, after, or instead
// of the triggering statement.
type TriggerTime int

const (
	Before TriggerTime = iota
	After
	InsteadOf
)

// TriggerEventOn names the relation a trigger is attached to: a table
// or a view (INSTEAD OF triggers only attach to views).
type TriggerEventOn struct {
	table *Table
	view  *View
}

// OnTable attaches the event to a table.
func OnTable(t Table) TriggerEventOn {
	return TriggerEventOn{table: &t}
}

// OnView attaches the event to a view.
func OnView(v View) TriggerEventOn {
	return TriggerEventOn{view: &v}
}

// Table returns the attached table and true, or false if the event is
// attached to a view.
func (o TriggerEventOn) Table() (Table, bool) {
	if o.table == nil {
		return Table{}, false
	}
	return *o.table, true
}

// View returns the attached view and true, or false if the event is
// attached to a table.
func (o TriggerEventOn) View() (View, bool) {
	if o.view == nil {
		return View{}, false
	}
	return *o.view, true
}

// TriggerEvent combines the action, timing, and target relation a
// trigger reacts to.
type TriggerEvent struct {
	Action TriggerAction
	Time   TriggerTime
	On     TriggerEventOn
}

// NewTriggerEvent builds a trigger event.
func NewTriggerEvent(action TriggerAction, time TriggerTime, on TriggerEventOn) TriggerEvent {
	return TriggerEvent{Action: action, Time: time, On: on}
}

// Trigger binds a stored procedure to a table or view event. Execute
// captures only the procedure's name; the procedure itself must be
// created separately.
type Trigger struct {
	Name    string
	Event   TriggerEvent
	ForEach TriggerForEach
	Execute string
}

// NewTrigger builds a trigger that calls function when event fires.
func NewTrigger(name string, event TriggerEvent, forEach TriggerForEach, function StoredProcedure) Trigger {
	return Trigger{
		Name:    name,
		Event:   event,
		ForEach: forEach,
		Execute: function.Name,
	}
}
