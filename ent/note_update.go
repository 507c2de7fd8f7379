// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/grasp/ent/note"
	"github.com/abhisek/grasp/ent/predicate"
)

// NoteUpdate is the builder for updating Note entities.
type NoteUpdate struct {
	config
	hooks    []Hook
	mutation *NoteMutation
}

// Where appends a list predicates to the NoteUpdate builder.
func (_u *NoteUpdate) Where(ps ...predicate.Note) *NoteUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetOwnerID sets the "owner_id" field.
func (_u *NoteUpdate) SetOwnerID(v string) *NoteUpdate {
	_u.mutation.SetOwnerID(v)
	return _u
}

// SetNillableOwnerID sets the "owner_id" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableOwnerID(v *string) *NoteUpdate {
	if v != nil {
		_u.SetOwnerID(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *NoteUpdate) SetTitle(v string) *NoteUpdate {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableTitle(v *string) *NoteUpdate {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetContent sets the "content" field.
func (_u *NoteUpdate) SetContent(v string) *NoteUpdate {
	_u.mutation.SetContent(v)
	return _u
}

// SetNillableContent sets the "content" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableContent(v *string) *NoteUpdate {
	if v != nil {
		_u.SetContent(*v)
	}
	return _u
}

// SetSourcePath sets the "source_path" field.
func (_u *NoteUpdate) SetSourcePath(v string) *NoteUpdate {
	_u.mutation.SetSourcePath(v)
	return _u
}

// SetNillableSourcePath sets the "source_path" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableSourcePath(v *string) *NoteUpdate {
	if v != nil {
		_u.SetSourcePath(*v)
	}
	return _u
}

// SetConceptCount sets the "concept_count" field.
func (_u *NoteUpdate) SetConceptCount(v int) *NoteUpdate {
	_u.mutation.ResetConceptCount()
	_u.mutation.SetConceptCount(v)
	return _u
}

// SetNillableConceptCount sets the "concept_count" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableConceptCount(v *int) *NoteUpdate {
	if v != nil {
		_u.SetConceptCount(*v)
	}
	return _u
}

// AddConceptCount adds value to the "concept_count" field.
func (_u *NoteUpdate) AddConceptCount(v int) *NoteUpdate {
	_u.mutation.AddConceptCount(v)
	return _u
}

// SetMasteredCount sets the "mastered_count" field.
func (_u *NoteUpdate) SetMasteredCount(v int) *NoteUpdate {
	_u.mutation.ResetMasteredCount()
	_u.mutation.SetMasteredCount(v)
	return _u
}

// SetNillableMasteredCount sets the "mastered_count" field if the given value is not nil.
func (_u *NoteUpdate) SetNillableMasteredCount(v *int) *NoteUpdate {
	if v != nil {
		_u.SetMasteredCount(*v)
	}
	return _u
}

// AddMasteredCount adds value to the "mastered_count" field.
func (_u *NoteUpdate) AddMasteredCount(v int) *NoteUpdate {
	_u.mutation.AddMasteredCount(v)
	return _u
}

// Mutation returns the NoteMutation object of the builder.
func (_u *NoteUpdate) Mutation() *NoteMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *NoteUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *NoteUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *NoteUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *NoteUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *NoteUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(note.Table, note.Columns, sqlgraph.NewFieldSpec(note.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.OwnerID(); ok {
		_spec.SetField(note.FieldOwnerID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(note.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.Content(); ok {
		_spec.SetField(note.FieldContent, field.TypeString, value)
	}
	if value, ok := _u.mutation.SourcePath(); ok {
		_spec.SetField(note.FieldSourcePath, field.TypeString, value)
	}
	if value, ok := _u.mutation.ConceptCount(); ok {
		_spec.SetField(note.FieldConceptCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedConceptCount(); ok {
		_spec.AddField(note.FieldConceptCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MasteredCount(); ok {
		_spec.SetField(note.FieldMasteredCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedMasteredCount(); ok {
		_spec.AddField(note.FieldMasteredCount, field.TypeInt, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{note.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// NoteUpdateOne is the builder for updating a single Note entity.
type NoteUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *NoteMutation
}

// SetOwnerID sets the "owner_id" field.
func (_u *NoteUpdateOne) SetOwnerID(v string) *NoteUpdateOne {
	_u.mutation.SetOwnerID(v)
	return _u
}

// SetNillableOwnerID sets the "owner_id" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableOwnerID(v *string) *NoteUpdateOne {
	if v != nil {
		_u.SetOwnerID(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *NoteUpdateOne) SetTitle(v string) *NoteUpdateOne {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableTitle(v *string) *NoteUpdateOne {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetContent sets the "content" field.
func (_u *NoteUpdateOne) SetContent(v string) *NoteUpdateOne {
	_u.mutation.SetContent(v)
	return _u
}

// SetNillableContent sets the "content" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableContent(v *string) *NoteUpdateOne {
	if v != nil {
		_u.SetContent(*v)
	}
	return _u
}

// SetSourcePath sets the "source_path" field.
func (_u *NoteUpdateOne) SetSourcePath(v string) *NoteUpdateOne {
	_u.mutation.SetSourcePath(v)
	return _u
}

// SetNillableSourcePath sets the "source_path" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableSourcePath(v *string) *NoteUpdateOne {
	if v != nil {
		_u.SetSourcePath(*v)
	}
	return _u
}

// SetConceptCount sets the "concept_count" field.
func (_u *NoteUpdateOne) SetConceptCount(v int) *NoteUpdateOne {
	_u.mutation.ResetConceptCount()
	_u.mutation.SetConceptCount(v)
	return _u
}

// SetNillableConceptCount sets the "concept_count" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableConceptCount(v *int) *NoteUpdateOne {
	if v != nil {
		_u.SetConceptCount(*v)
	}
	return _u
}

// AddConceptCount adds value to the "concept_count" field.
func (_u *NoteUpdateOne) AddConceptCount(v int) *NoteUpdateOne {
	_u.mutation.AddConceptCount(v)
	return _u
}

// SetMasteredCount sets the "mastered_count" field.
func (_u *NoteUpdateOne) SetMasteredCount(v int) *NoteUpdateOne {
	_u.mutation.ResetMasteredCount()
	_u.mutation.SetMasteredCount(v)
	return _u
}

// SetNillableMasteredCount sets the "mastered_count" field if the given value is not nil.
func (_u *NoteUpdateOne) SetNillableMasteredCount(v *int) *NoteUpdateOne {
	if v != nil {
		_u.SetMasteredCount(*v)
	}
	return _u
}

// AddMasteredCount adds value to the "mastered_count" field.
func (_u *NoteUpdateOne) AddMasteredCount(v int) *NoteUpdateOne {
	_u.mutation.AddMasteredCount(v)
	return _u
}

// Mutation returns the NoteMutation object of the builder.
func (_u *NoteUpdateOne) Mutation() *NoteMutation {
	return _u.mutation
}

// Where appends a list predicates to the NoteUpdate builder.
func (_u *NoteUpdateOne) Where(ps ...predicate.Note) *NoteUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *NoteUpdateOne) Select(field string, fields ...string) *NoteUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Note entity.
func (_u *NoteUpdateOne) Save(ctx context.Context) (*Note, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *NoteUpdateOne) SaveX(ctx context.Context) *Note {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *NoteUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *NoteUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *NoteUpdateOne) sqlSave(ctx context.Context) (_node *Note, err error) {
	_spec := sqlgraph.NewUpdateSpec(note.Table, note.Columns, sqlgraph.NewFieldSpec(note.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Note.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, note.FieldID)
		for _, f := range fields {
			if !note.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != note.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.OwnerID(); ok {
		_spec.SetField(note.FieldOwnerID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(note.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.Content(); ok {
		_spec.SetField(note.FieldContent, field.TypeString, value)
	}
	if value, ok := _u.mutation.SourcePath(); ok {
		_spec.SetField(note.FieldSourcePath, field.TypeString, value)
	}
	if value, ok := _u.mutation.ConceptCount(); ok {
		_spec.SetField(note.FieldConceptCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedConceptCount(); ok {
		_spec.AddField(note.FieldConceptCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MasteredCount(); ok {
		_spec.SetField(note.FieldMasteredCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedMasteredCount(); ok {
		_spec.AddField(note.FieldMasteredCount, field.TypeInt, value)
	}
	_node = &Note{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{note.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
