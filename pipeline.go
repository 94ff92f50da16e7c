package sitedesk

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InputMode names how files reached the pipeline.
type InputMode string

const (
	ModeSelect InputMode = "select"
	ModeDrop   InputMode = "drop"
)

const reasonNotImage = "not an image file"

// Rejection records a file the pipeline refused and why.
type Rejection struct {
	Name   string
	Reason string
}

// PreviewItem is one entry of the preview list as shown to the operator.
type PreviewItem struct {
	ID        string
	Name      string
	URL       string
	Thumbnail string
	Pending   bool
}

type previewEntry struct {
	id      string
	name    string
	pending bool
	image   DecodedImage
	cancel  context.CancelFunc
}

// Pipeline turns uploaded files into an ordered, editable preview list and
// commits it as PhotoItems. Entries take their slot at ingest time, so the
// list follows selection order whatever order the decodes finish in.
type Pipeline struct {
	label  string
	decode DecodeFunc
	ids    *IDSource

	mu      sync.Mutex
	entries []*previewEntry
}

// NewPipeline returns a pipeline whose committed photos are named
// "<label> 1", "<label> 2", ... A nil decode uses DecodeImage.
func NewPipeline(label string, decode DecodeFunc, ids *IDSource) *Pipeline {
	if decode == nil {
		decode = DecodeImage
	}
	if ids == nil {
		ids = &IDSource{}
	}
	return &Pipeline{label: label, decode: decode, ids: ids}
}

// Batch tracks the decodes started by one Ingest call.
type Batch struct {
	Mode     InputMode
	Accepted int

	wg       sync.WaitGroup
	mu       sync.Mutex
	rejected []Rejection
}

func (b *Batch) reject(name, reason string) {
	b.mu.Lock()
	b.rejected = append(b.rejected, Rejection{Name: name, Reason: reason})
	b.mu.Unlock()
}

// Rejected returns the rejections recorded so far.
func (b *Batch) Rejected() []Rejection {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Rejection, len(b.rejected))
	copy(out, b.rejected)
	return out
}

// Wait blocks until every decode of the batch has settled or ctx is done,
// then returns all rejections of the batch.
func (b *Batch) Wait(ctx context.Context) ([]Rejection, error) {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return b.Rejected(), nil
	case <-ctx.Done():
		return b.Rejected(), ctx.Err()
	}
}

// Ingest accepts the image files of one selection or drop and starts decoding
// each of them. Non-image files are rejected one by one; the rest of the batch
// is still accepted. Decodes run under ctx.
func (p *Pipeline) Ingest(ctx context.Context, mode InputMode, files []FileSource) (*Batch, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	b := &Batch{Mode: mode}
	var accepted []FileSource
	for _, f := range files {
		if !isImage(f) {
			b.reject(f.Name(), reasonNotImage)
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) == 0 {
		return b, ErrNoImages
	}
	b.Accepted = len(accepted)

	p.mu.Lock()
	for _, f := range accepted {
		dctx, cancel := context.WithCancel(ctx)
		e := &previewEntry{
			id:      uuid.NewString(),
			name:    f.Name(),
			pending: true,
			cancel:  cancel,
		}
		p.entries = append(p.entries, e)
		b.wg.Add(1)
		go p.run(dctx, b, e, f)
	}
	p.mu.Unlock()
	return b, nil
}

func (p *Pipeline) run(ctx context.Context, b *Batch, e *previewEntry, f FileSource) {
	defer b.wg.Done()
	img, err := p.decode(ctx, f)

	p.mu.Lock()
	defer p.mu.Unlock()
	e.cancel()
	idx := p.indexOf(e.id)
	if idx < 0 {
		// removed while pending
		return
	}
	if err != nil {
		p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			b.reject(f.Name(), "upload cancelled")
		} else {
			b.reject(f.Name(), err.Error())
		}
		return
	}
	e.image = img
	e.pending = false
}

func (p *Pipeline) indexOf(id string) int {
	for i, e := range p.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Remove drops the preview entry with id, cancelling its decode if it has not
// finished. It reports whether an entry was removed.
func (p *Pipeline) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.entries[idx].cancel()
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	return true
}

// Items returns a snapshot of the preview list in order.
func (p *Pipeline) Items() []PreviewItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PreviewItem, len(p.entries))
	for i, e := range p.entries {
		out[i] = PreviewItem{
			ID:        e.id,
			Name:      e.name,
			URL:       e.image.URL,
			Thumbnail: e.image.Thumbnail,
			Pending:   e.pending,
		}
	}
	return out
}

// Count returns the number of decoded entries in the preview list.
func (p *Pipeline) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.entries {
		if !e.pending {
			n++
		}
	}
	return n
}

// CountLabel renders the selection counter, or "" when nothing is selected.
func (p *Pipeline) CountLabel() string {
	return countLabel(p.Count())
}

func countLabel(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 photo selected"
	}
	return fmt.Sprintf("%d photos selected", n)
}

// Commit converts the decoded preview entries, in preview order, into
// PhotoItems stamped with now. Entries still decoding are not included. The
// committed entries stay in the preview list until Release is called with the
// returned ids.
func (p *Pipeline) Commit(now time.Time) ([]PhotoItem, []string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ready []*previewEntry
	for _, e := range p.entries {
		if !e.pending {
			ready = append(ready, e)
		}
	}
	if len(ready) == 0 {
		return nil, nil, ErrNoPhotos
	}
	ms := p.ids.Next(now)
	items := make([]PhotoItem, len(ready))
	ids := make([]string, len(ready))
	for i, e := range ready {
		items[i] = PhotoItem{
			ID:         photoItemID(ms, i),
			URL:        e.image.URL,
			Name:       fmt.Sprintf("%s %d", p.label, i+1),
			UploadedAt: ms,
		}
		ids[i] = e.id
	}
	return items, ids, nil
}

// Release drops the entries with the given ids from the preview list.
// Entries ingested after the matching Commit are kept.
func (p *Pipeline) Release(ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.entries[:0]
	for _, e := range p.entries {
		if slices.Contains(ids, e.id) {
			e.cancel()
			continue
		}
		kept = append(kept, e)
	}
	clear(p.entries[len(kept):])
	p.entries = kept
}
