// Package safety documents the threat model behind the containment checks
// enforced in internal/fscore, so the reasoning behind those checks lives
// in one place instead of being scattered as inline justifications.
//
// complement-mcp exposes raw filesystem access to an untrusted automation
// client: a language-model agent that can supply arbitrary path strings,
// regexes, and file content on every call. The core has to assume every
// request argument is adversarial, not just malformed.
//
// # Threat Model
//
// T1 - Path Traversal: a relative `root`/`path` argument containing ".."
// sequences, or one that resolves through a symlink, could otherwise reach
// outside the server root. Mitigations: canonicalization via
// filepath.EvalSymlinks before any containment check, and a
// prefix-with-separator-boundary comparison (not a naive string prefix,
// which would let "/srv/app2" pass a "/srv/app" check) against the
// canonical server root.
//
// T2 - Absolute-Path Repository Escape: an absolute path argument bypasses
// the server root entirely, so it is instead required to resolve inside
// some git working tree (ancestor directory containing a ".git" entry).
// This still permits reading anywhere the process's OS permissions allow,
// but bounds the blast radius to "inside a git repository" rather than
// "anywhere on the filesystem", and keeps the two containment tiers
// independently auditable.
//
// T3 - Mutation Type Confusion: overwrite_file, create_file, and
// delete_path each assume a specific target type (regular file, or for
// delete_path a possibly-directory target gated by an explicit recursive
// flag). Mitigations: every mutator checks AdmittedPath.Kind before
// touching the filesystem and fails closed (NotAFile / NotADirectory)
// rather than silently coercing the target.
//
// T4 - Partial-Write Corruption: a crash or concurrent read mid-write
// could expose a half-written file. Mitigation: every content-writing
// mutation goes through a temp-file-plus-rename sequence in the
// destination directory, so a reader only ever observes the previous
// complete content or the next complete content, never a partial one.
//
// T5 - Unbounded Read/Walk/Search: a caller-supplied max_bytes or
// max_results could otherwise be used to force the process to buffer an
// entire large tree or file into memory. Mitigation: ServerConfig caps
// (MaxReadBytes, MaxWalkResults) clamp caller-supplied limits rather than
// trusting them, and the walker streams results instead of collecting a
// full tree before paging. The caps bound what is returned, not what is
// read: read_file and search_text each load a whole file into memory
// before windowing or scanning it.
//
// T6 - Ignore-File Bypass via Descent: a directory excluded by gitignore
// rules or a deny-listed name (".git") must never be descended into, not
// merely filtered from the result list — otherwise a sufficiently crafted
// include glob could still surface entries the ignore rules were meant to
// hide. Mitigation: the walker checks descent eligibility separately from
// result admission, before recursing.
//
// # Design Principles
//
// Fail closed on ambiguity: a request with both byte-range and line-range
// fields, or an unparseable regex, is rejected outright rather than guessed
// at.
//
// No caching across requests: the core holds no per-path state between
// calls, so a containment decision is never stale by the time the
// filesystem is actually touched — though a TOCTOU gap between the
// resolver's stat probe and the eventual operation is not eliminated, only
// narrowed; this is the documented limit of the resolver's guarantee.
package safety
