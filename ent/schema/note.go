package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Note is a saved study summary produced at the end of a session.
type Note struct {
	ent.Schema
}

func (Note) Fields() []ent.Field {
	return []ent.Field{
		field.String("owner_id").
			Default("").
			Comment("Stable learner identifier namespacing this note"),
		field.String("title").
			Comment("Display title, usually derived from the source file"),
		field.Text("content").
			Comment("Markdown body of the study note"),
		field.String("source_path").
			Default("").
			Comment("Path of the document the session studied"),
		field.Int("concept_count").
			Default(0).
			Comment("Concepts extracted from the document"),
		field.Int("mastered_count").
			Default(0).
			Comment("Concepts that reached the top mastery level"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Note) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id"),
		index.Fields("created_at"),
	}
}
