package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/todo/pkg/item"
)

const todosBucket = "todos"

// LoadDiskv creates a Persistence that keeps one JSON file per item below
// basePath.
func LoadDiskv(basePath string) (Persistence, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	// mu serializes writers; reorder and delete touch several files.
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

var _ Persistence = (*persistence)(nil)

func (p *persistence) read(key string) (item.Item, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return item.Item{}, err
	}
	var it item.Item
	if err := json.Unmarshal(val, &it); err != nil {
		return item.Item{}, err
	}
	it.ID = keyToPathTransform(key).FileName
	return it, nil
}

func (p *persistence) write(it item.Item) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(it.ID), data)
}

func (p *persistence) all(ctx context.Context) ([]item.Item, error) {
	all := make([]item.Item, 0)
	for key := range p.d.KeysPrefix(todosBucket+":", ctx.Done()) {
		it, err := p.read(key)
		if err != nil {
			slog.Warn("store: skipping unreadable todo", "key", key, "err", err)
			continue
		}
		all = append(all, it)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item.SortByPosition(all)
	return all, nil
}

func (p *persistence) List(ctx context.Context) ([]item.Item, error) {
	return p.all(ctx)
}

func (p *persistence) Get(ctx context.Context, id string) (item.Item, error) {
	if err := ctx.Err(); err != nil {
		return item.Item{}, err
	}
	return p.get(id)
}

func (p *persistence) get(id string) (item.Item, error) {
	key := toKey(id)
	if id == "" || !p.d.Has(key) {
		return item.Item{}, ErrNotFound
	}
	it, err := p.read(key)
	if err != nil {
		return item.Item{}, fmt.Errorf("store: read %s: %w", id, err)
	}
	return it, nil
}

func (p *persistence) Create(ctx context.Context, it item.Item) (item.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	all, err := p.all(ctx)
	if err != nil {
		return item.Item{}, err
	}
	if item.IndexOf(all, it.ID) >= 0 {
		return item.Item{}, fmt.Errorf("store: todo %s already exists", it.ID)
	}
	it.Position = len(all)
	if err := p.write(it); err != nil {
		return item.Item{}, fmt.Errorf("store: write %s: %w", it.ID, err)
	}
	return it, nil
}

func (p *persistence) Update(ctx context.Context, it item.Item) (item.Item, error) {
	if err := ctx.Err(); err != nil {
		return item.Item{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, err := p.get(it.ID)
	if err != nil {
		return item.Item{}, err
	}
	existing.Title = it.Title
	existing.Description = it.Description
	existing.Completed = it.Completed
	if err := p.write(existing); err != nil {
		return item.Item{}, fmt.Errorf("store: write %s: %w", it.ID, err)
	}
	return existing, nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.get(id); err != nil {
		return err
	}
	if err := p.d.Erase(toKey(id)); err != nil {
		return fmt.Errorf("store: erase %s: %w", id, err)
	}
	all, err := p.all(ctx)
	if err != nil {
		return err
	}
	for _, changed := range compact(all) {
		if err := p.write(changed); err != nil {
			return fmt.Errorf("store: write %s: %w", changed.ID, err)
		}
	}
	return nil
}

func (p *persistence) Reorder(ctx context.Context, id string, position int) (item.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	all, err := p.all(ctx)
	if err != nil {
		return item.Item{}, err
	}
	idx := item.IndexOf(all, id)
	if idx < 0 {
		return item.Item{}, ErrNotFound
	}
	if position < 0 || position >= len(all) {
		return item.Item{}, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidPosition, position, len(all)-1)
	}
	// heal any gaps left by external edits before shifting
	for _, changed := range compact(all) {
		if err := p.write(changed); err != nil {
			return item.Item{}, fmt.Errorf("store: write %s: %w", changed.ID, err)
		}
	}
	idx = item.IndexOf(all, id)
	moved := all[idx]
	if moved.Position == position {
		return moved, nil
	}
	for _, changed := range shift(all, moved.Position, position) {
		if changed.ID == id {
			continue
		}
		if err := p.write(changed); err != nil {
			return item.Item{}, fmt.Errorf("store: write %s: %w", changed.ID, err)
		}
	}
	moved.Position = position
	if err := p.write(moved); err != nil {
		return item.Item{}, fmt.Errorf("store: write %s: %w", id, err)
	}
	return moved, nil
}

func (p *persistence) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{FileName: parts[0]}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s:%s", strings.Join(pathKey.Path, ":"), pathKey.FileName)
}

// toKey makes `todos:id`
func toKey(id string) string {
	return fmt.Sprintf("%s:%s", todosBucket, id)
}
