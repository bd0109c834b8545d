// Package gringottsdb implements an embedded, single-file key-value store
// that persists hierarchical, path-like string keys ("a/b/c") to string
// values through a block-structured file format.
//
// # Overview
//
// The file is a flat sequence of fixed-size blocks behind a 256-byte header
// block. Keys address a multi-level tree: every path segment but the last
// selects a level of the tree (a linked chain of blocks reachable by
// following next-block pointers); the final segment addresses an entry
// within the terminal block chain. Blocks that fill up split, handing the
// upper half of their entries to a freshly allocated right sibling.
//
// # Opening a store
//
//	db, err := gringottsdb.Create("/path/to/store.gringotts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Set("config/db/host", "localhost"); err != nil {
//	    log.Fatal(err)
//	}
//
//	val, err := db.Get("config/db/host")
//
// An existing store is reopened with Open, which validates the file's
// magic string before returning a handle:
//
//	db, err := gringottsdb.Open("/path/to/store.gringotts")
//
// # Keys
//
// A key is a '/'-separated path; a literal '/' inside a segment is written
// as '\/'. All but the last segment navigate the tree; the last segment
// (the "leaf key") names the value within the block it resolves to.
//
// # Concurrency
//
// A Gringotts handle is not safe for concurrent use from multiple
// goroutines, and the file it wraps is not safe for concurrent use from
// multiple processes. Every operation is synchronous: it either completes
// or returns an error.
//
// # Scope
//
// This package does not implement transactions spanning multiple calls,
// crash durability (no fsync/journaling protocol), multi-process or
// concurrent access, deletion of keys, reclamation of blocks, range scans,
// secondary indexes, compression, or encryption.
package gringottsdb
