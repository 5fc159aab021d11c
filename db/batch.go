package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"scribe/helper"
	"scribe/interfaces"
	"scribe/model"
)

var errBatchClosed = errors.New("batch already committed or rolled back")

// batch collects the writes of one block in a single SQL transaction.
type batch struct {
	h      *Handler
	tx     *sql.Tx
	b      sq.StatementBuilderType
	models map[string]model.Model

	summary model.CommitSummary
	done    bool
}

var _ interfaces.Batch = (*batch)(nil)

func newBatch(h *Handler, tx *sql.Tx) *batch {
	return &batch{
		h:      h,
		tx:     tx,
		b:      h.builder,
		models: make(map[string]model.Model),
	}
}

func (b *batch) release() {
	if !b.done {
		b.done = true
		b.h.writeMu.Unlock()
	}
}

func (b *batch) exec(ctx context.Context, s sq.Sqlizer) (sql.Result, error) {
	query, args, err := s.ToSql()
	if err != nil {
		return nil, err
	}
	return b.tx.ExecContext(ctx, query, args...)
}

// Commit advances the cursor to block, never backwards, and makes every write
// of the batch visible at once.
func (b *batch) Commit(ctx context.Context, block uint64) (model.CommitSummary, error) {
	if b.done {
		return model.CommitSummary{}, errBatchClosed
	}
	defer b.release()

	stmt := b.b.Insert("indexer_head").Columns("id", "head").Values(1, int64(block)).
		Suffix("ON CONFLICT (id) DO UPDATE SET head = excluded.head WHERE excluded.head > indexer_head.head")
	if _, err := b.exec(ctx, stmt); err != nil {
		_ = b.tx.Rollback()
		return model.CommitSummary{}, fmt.Errorf("advance head to %d: %w", block, err)
	}
	if err := b.tx.Commit(); err != nil {
		return model.CommitSummary{}, fmt.Errorf("commit block %d: %w", block, err)
	}
	b.summary.Block = block
	return b.summary, nil
}

func (b *batch) Rollback() error {
	if b.done {
		return nil
	}
	defer b.release()
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func (b *batch) Model(ctx context.Context, name string) (model.Model, error) {
	if m, ok := b.models[name]; ok {
		return m, nil
	}
	m, err := loadModel(ctx, b.tx, b.b, name)
	if err != nil {
		return model.Model{}, err
	}
	b.models[name] = m
	return m, nil
}

// RegisterModel creates the model table, or grows it when a compatible newer
// declaration arrives. Registrations older than the stored one are ignored.
func (b *batch) RegisterModel(ctx context.Context, m model.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("register model %s: %w", m.Name, err)
	}
	s, _ := m.Struct()
	if err := checkReserved(s); err != nil {
		return fmt.Errorf("register model %s: %w", m.Name, err)
	}
	layout, err := json.Marshal(m.Schema)
	if err != nil {
		return fmt.Errorf("encode layout of %s: %w", m.Name, err)
	}
	ts := formatTime(m.CreatedAt)

	prev, err := b.Model(ctx, m.Name)
	switch {
	case errors.Is(err, model.ErrModelNotFound):
		m.Version = 1
		if _, err := b.tx.ExecContext(ctx, createTableSQL(m.Name, columns(m.Schema))); err != nil {
			return fmt.Errorf("create table %s: %w", m.Name, err)
		}
		stmt := b.b.Insert("models").
			Columns("id", "name", "class_hash", "version", "layout", "event_id", "created_at", "updated_at").
			Values(helper.Selector(m.Name).Hex(), m.Name, m.ClassHash.Hex(), m.Version, string(layout), m.EventID, ts, ts)
		if _, err := b.exec(ctx, stmt); err != nil {
			return fmt.Errorf("insert model %s: %w", m.Name, err)
		}
	case err != nil:
		return err
	case m.EventID <= prev.EventID:
		slog.Debug("ignoring stale model registration", "model", m.Name, "event", m.EventID, "stored", prev.EventID)
		return nil
	default:
		if err := model.Compatible(prev.Schema, m.Schema); err != nil {
			return fmt.Errorf("model %s: %w", m.Name, err)
		}
		prevLayout, _ := json.Marshal(prev.Schema)
		changed := prev.ClassHash != m.ClassHash || !bytes.Equal(prevLayout, layout)
		m.Version = prev.Version
		if changed {
			m.Version++
		}
		m.CreatedAt = prev.CreatedAt

		for _, c := range addedColumns(prev.Schema, m.Schema) {
			ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", quote(m.Name), quote(c.name), c.sqlType())
			if _, err := b.tx.ExecContext(ctx, ddl); err != nil {
				return fmt.Errorf("add column %s to %s: %w", c.name, m.Name, err)
			}
		}
		stmt := b.b.Update("models").
			Set("class_hash", m.ClassHash.Hex()).
			Set("version", m.Version).
			Set("layout", string(layout)).
			Set("event_id", m.EventID).
			Set("updated_at", ts).
			Where(sq.Eq{"name": m.Name})
		if _, err := b.exec(ctx, stmt); err != nil {
			return fmt.Errorf("update model %s: %w", m.Name, err)
		}
		if !changed {
			b.models[m.Name] = m
			return nil
		}
		slog.Info("model updated", "model", m.Name, "version", m.Version)
	}
	b.models[m.Name] = m
	b.summary.Models = append(b.summary.Models, m)
	return nil
}

// SetEntity upserts a record. A write carrying an event id not newer than
// the stored one leaves the row untouched.
func (b *batch) SetEntity(ctx context.Context, w model.EntityWrite) error {
	m, err := b.Model(ctx, w.Model)
	if errors.Is(err, model.ErrModelNotFound) {
		return fmt.Errorf("%w: %s", model.ErrUnknownModel, w.Model)
	}
	if err != nil {
		return err
	}

	cols := columns(m.Schema)
	values := rowValues(w.Value)
	if len(values) != len(cols) {
		return fmt.Errorf("record for %s has %d columns, model has %d", m.Name, len(values), len(cols))
	}
	id := helper.EntityID(w.Keys)
	ts := formatTime(w.Timestamp)

	names := append([]string{}, internalColumns...)
	for _, c := range cols {
		names = append(names, quote(c.name))
	}
	sets := []string{
		fmt.Sprintf("%s = excluded.%s", colEventID, colEventID),
		fmt.Sprintf("%s = excluded.%s", colUpdatedAt, colUpdatedAt),
	}
	for _, n := range names[len(internalColumns):] {
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", n, n))
	}
	table := quote(m.Name)
	stmt := b.b.Insert(table).Columns(names...).
		Values(append([]any{id, w.EventID, ts, ts}, values...)...).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s WHERE excluded.%s > %s.%s",
			colEntityID, strings.Join(sets, ", "), colEventID, table, colEventID))
	res, err := b.exec(ctx, stmt)
	if err != nil {
		return fmt.Errorf("write %s record: %w", m.Name, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		slog.Debug("skipping stale record write", "model", m.Name, "entity", id, "event", w.EventID)
		return nil
	}

	var createdAt string
	query, args, err := b.b.Select(colCreatedAt).From(table).Where(sq.Eq{colEntityID: id}).ToSql()
	if err != nil {
		return err
	}
	if err := b.tx.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("read back %s record: %w", m.Name, err)
	}
	entity, err := b.upsertEntity(ctx, id, m.Name, w)
	if err != nil {
		return err
	}
	record := model.Record{
		Model:     m.Name,
		EntityID:  id,
		Keys:      w.Keys,
		Value:     w.Value.Clone(),
		EventID:   w.EventID,
		CreatedAt: parseTime(createdAt),
		UpdatedAt: w.Timestamp.UTC(),
	}
	b.summary.Entities = append(b.summary.Entities, model.EntityUpdate{Entity: entity, Record: record})
	return nil
}

func (b *batch) upsertEntity(ctx context.Context, id, modelName string, w model.EntityWrite) (model.Entity, error) {
	e := model.Entity{
		ID:         id,
		Keys:       w.Keys,
		ModelNames: []string{modelName},
		EventID:    w.EventID,
		CreatedAt:  w.Timestamp.UTC(),
		UpdatedAt:  w.Timestamp.UTC(),
	}
	ts := formatTime(w.Timestamp)
	query, args, err := b.b.Select("model_names", "event_id", "created_at", "updated_at").
		From("entities").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return e, err
	}
	var names, eventID, createdAt, updatedAt string
	err = b.tx.QueryRowContext(ctx, query, args...).Scan(&names, &eventID, &createdAt, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stmt := b.b.Insert("entities").
			Columns("id", "keys", "model_names", "event_id", "created_at", "updated_at").
			Values(id, model.JoinFelts(w.Keys), modelName, w.EventID, ts, ts)
		if _, err := b.exec(ctx, stmt); err != nil {
			return e, fmt.Errorf("insert entity %s: %w", id, err)
		}
		return e, nil
	case err != nil:
		return e, fmt.Errorf("read entity %s: %w", id, err)
	}

	e.ModelNames = mergeModelName(splitModelNames(names), modelName)
	e.CreatedAt = parseTime(createdAt)
	if eventID > w.EventID {
		e.EventID = eventID
		e.UpdatedAt = parseTime(updatedAt)
	}
	stmt := b.b.Update("entities").
		Set("model_names", strings.Join(e.ModelNames, ",")).
		Set("event_id", e.EventID).
		Set("updated_at", formatTime(e.UpdatedAt)).
		Where(sq.Eq{"id": id})
	if _, err := b.exec(ctx, stmt); err != nil {
		return e, fmt.Errorf("update entity %s: %w", id, err)
	}
	return e, nil
}

func (b *batch) SetMetadata(ctx context.Context, resource model.Felt, uri, eventID string, ts time.Time) error {
	at := formatTime(ts)
	stmt := b.b.Insert("metadata").
		Columns("id", "uri", "event_id", "created_at", "updated_at").
		Values(resource.Hex(), uri, eventID, at, at).
		Suffix("ON CONFLICT (id) DO UPDATE SET uri = excluded.uri, event_id = excluded.event_id, " +
			"updated_at = excluded.updated_at WHERE excluded.event_id > metadata.event_id")
	if _, err := b.exec(ctx, stmt); err != nil {
		return fmt.Errorf("set metadata of %s: %w", resource.Hex(), err)
	}
	return nil
}

func (b *batch) StoreEvent(ctx context.Context, eventID string, event model.Event, txHash model.Felt, ts time.Time) error {
	stmt := b.b.Insert("events").
		Columns("id", "keys", "data", "transaction_hash", "created_at").
		Values(eventID, model.JoinFelts(event.Keys), model.JoinFelts(event.Data), txHash.Hex(), formatTime(ts)).
		Suffix("ON CONFLICT (id) DO NOTHING")
	if _, err := b.exec(ctx, stmt); err != nil {
		return fmt.Errorf("store event %s: %w", eventID, err)
	}
	return nil
}

func (b *batch) StoreTransaction(ctx context.Context, block *model.Block, tx model.Transaction) error {
	stmt := b.b.Insert("transactions").
		Columns("id", "block_number", "type", "sender_address", "calldata", "created_at").
		Values(tx.Hash.Hex(), int64(block.Number), tx.Type, tx.SenderAddress.Hex(),
			model.JoinFelts(tx.Calldata), formatTime(time.Unix(int64(block.Timestamp), 0))).
		Suffix("ON CONFLICT (id) DO NOTHING")
	if _, err := b.exec(ctx, stmt); err != nil {
		return fmt.Errorf("store transaction %s: %w", tx.Hash.Hex(), err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		slog.Warn("malformed stored timestamp", "value", s, "error", err)
	}
	return t
}

func splitModelNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func mergeModelName(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
