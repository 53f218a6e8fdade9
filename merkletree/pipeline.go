// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package merkletree

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mtchecksum/merkle-tree-checksum/blockio"
	"github.com/mtchecksum/merkle-tree-checksum/hashalgo"
	"github.com/mtchecksum/merkle-tree-checksum/treegeom"
)

// blockChannelFactor sizes the bounded channels between the reader, the
// workers, and the sequencer at roughly 2x the worker count: bounded channels
// sized this way are sufficient to keep workers fed, while an unbounded queue
// would be a correctness risk on huge files.
const blockChannelFactor = 2

// ProgressFunc is invoked once per block read, with the number of bytes that
// block contained. It exists purely for the CLI's optional progress bar; the
// core never depends on it being set. May be nil.
type ProgressFunc func(bytesRead int)

// RunFile drives the pipeline for exactly one file: it reads blocks from
// reader, hashes leaves (in parallel across jobs workers, or inline when
// jobs <= 0), folds interior nodes, and streams every NodeRecord into sink
// in canonical order before returning the root hash. A concrete failure
// (I/O, a bad leaf) is returned as-is; cancellation of ctx, whether it
// originated outside RunFile or from a sibling goroutine that merely
// observed ctx.Done(), is reported as a CancelledError.
func RunFile(ctx context.Context, params TreeParams, geom treegeom.Geometry, reader *blockio.Reader, jobs int, fileIndex int, sink Sink, progress ProgressFunc) (rootHash []byte, err error) {
	if jobs <= 0 {
		return runInline(ctx, params, geom, reader, fileIndex, sink, progress)
	}
	return runParallel(ctx, params, geom, reader, jobs, fileIndex, sink, progress)
}

func runInline(ctx context.Context, params TreeParams, geom treegeom.Geometry, reader *blockio.Reader, fileIndex int, sink Sink, progress ProgressFunc) ([]byte, error) {
	src := &inlineSource{algo: params.Algo, reader: reader}
	wrapped := progressWrappedSource{inner: src, progress: progress}
	t := &traversal{geom: geom, params: params, fileIndex: fileIndex, sink: sink, src: wrapped}
	return t.run(ctx)
}

func runParallel(ctx context.Context, params TreeParams, geom treegeom.Geometry, reader *blockio.Reader, jobs int, fileIndex int, sink Sink, progress ProgressFunc) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	capacity := blockChannelFactor * jobs
	blockCh := make(chan blockMsg, capacity)
	leafCh := make(chan leafResult, capacity)

	g.Go(func() error {
		defer close(blockCh)
		for {
			blk, ok, err := reader.Next()
			if err != nil {
				return &IoError{Err: err}
			}
			if !ok {
				return nil
			}
			if progress != nil {
				progress(len(blk.Data))
			}
			select {
			case blockCh <- blockMsg{block: blk}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	workersDone := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < jobs; i++ {
			wg.Add(1)
			g.Go(func() error {
				defer wg.Done()
				return hashWorker(gctx, params.Algo, blockCh, leafCh)
			})
		}
		wg.Wait()
		close(leafCh)
		close(workersDone)
	}()
	// The closer goroutine above registers the workers with g from its own
	// goroutine, so it is itself tracked here: g's count then stays above
	// zero until every worker has been registered and has finished, and
	// g.Wait() cannot return while a worker is still running.
	g.Go(func() error {
		<-workersDone
		return nil
	})

	seq := newSequencedSource(leafCh)
	t := &traversal{geom: geom, params: params, fileIndex: fileIndex, sink: sink, src: seq}

	root, buildErr := t.run(gctx)
	if buildErr != nil && gctx.Err() == nil {
		// The traversal failed on its own (e.g. the sink returned an error)
		// while the reader and workers are still running; nothing drains
		// leafCh any more, so stop them before waiting.
		cancel()
		g.Wait()
		return nil, buildErr
	}
	groupErr := g.Wait()
	if groupErr != nil {
		// errgroup keeps only the first goroutine's error; when that error is
		// itself nothing but ctx's own cancellation signal, it means the
		// goroutine that "won" merely noticed the shared abort rather than
		// causing it, so surface it as a cancellation rather than pretending
		// it is the fatal error.
		if errors.Is(groupErr, context.Canceled) || errors.Is(groupErr, context.DeadlineExceeded) {
			return nil, &CancelledError{Cause: groupErr}
		}
		return nil, groupErr
	}
	if buildErr != nil {
		if errors.Is(buildErr, context.Canceled) || errors.Is(buildErr, context.DeadlineExceeded) {
			return nil, &CancelledError{Cause: buildErr}
		}
		return nil, buildErr
	}
	return root, nil
}

type blockMsg struct {
	block blockio.Block
}

func hashWorker(ctx context.Context, algo hashalgo.Algorithm, blockCh <-chan blockMsg, leafCh chan<- leafResult) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-blockCh:
			if !ok {
				return nil
			}
			h, err := leafHash(algo, msg.block.Data)
			if err != nil {
				return err
			}
			select {
			case leafCh <- leafResult{index: msg.block.Index, hash: h}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// progressWrappedSource decorates a leafSource with a byte-progress
// callback for the inline (jobs=0) path, where there is no separate reader
// goroutine to hang the callback off of.
type progressWrappedSource struct {
	inner    *inlineSource
	progress ProgressFunc
}

func (s progressWrappedSource) leaf(ctx context.Context, index uint64) ([]byte, error) {
	h, err := s.inner.leaf(ctx, index)
	if err == nil && s.progress != nil {
		s.progress(s.inner.lastSize)
	}
	return h, err
}
