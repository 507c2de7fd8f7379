package store

import (
	"context"
	"fmt"

	"github.com/abhisek/grasp/ent"
	"github.com/abhisek/grasp/ent/note"
)

// noteRepo implements NoteRepo backed by ent.
type noteRepo struct {
	client *ent.Client
}

func (r *noteRepo) Save(ctx context.Context, n *Note) error {
	row, err := r.client.Note.Create().
		SetOwnerID(n.OwnerID).
		SetTitle(n.Title).
		SetContent(n.Content).
		SetSourcePath(n.SourcePath).
		SetConceptCount(n.ConceptCount).
		SetMasteredCount(n.MasteredCount).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	n.ID = row.ID
	n.CreatedAt = row.CreatedAt
	return nil
}

func (r *noteRepo) List(ctx context.Context, ownerID string) ([]Note, error) {
	rows, err := r.client.Note.Query().
		Where(note.OwnerID(ownerID)).
		Order(ent.Desc(note.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, toNote(row))
	}
	return notes, nil
}

func (r *noteRepo) Get(ctx context.Context, ownerID string, id int) (*Note, error) {
	row, err := r.client.Note.Query().
		Where(note.ID(id), note.OwnerID(ownerID)).
		Only(ctx)
	if ent.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	n := toNote(row)
	return &n, nil
}

func (r *noteRepo) Delete(ctx context.Context, ownerID string, id int) (bool, error) {
	deleted, err := r.client.Note.Delete().
		Where(note.ID(id), note.OwnerID(ownerID)).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return deleted > 0, nil
}

func toNote(row *ent.Note) Note {
	return Note{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Title:         row.Title,
		Content:       row.Content,
		SourcePath:    row.SourcePath,
		ConceptCount:  row.ConceptCount,
		MasteredCount: row.MasteredCount,
		CreatedAt:     row.CreatedAt,
	}
}
