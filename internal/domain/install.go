package domain

import "time"

// RunStatus is the outcome of an install run.
type RunStatus string

const (
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunPartial  RunStatus = "partial"
	RunFailed   RunStatus = "failed"
	RunCanceled RunStatus = "canceled"
)

// FileStatus is the outcome for a single installed file.
type FileStatus string

const (
	FileInstalled FileStatus = "installed"
	FileSkipped   FileStatus = "skipped"
	FileFailed    FileStatus = "failed"
)

// EntryKind names the kind of manifest entry a file came from.
type EntryKind string

const (
	KindResource EntryKind = "resource"
	KindAddon    EntryKind = "addon"
)

// InstallRun is one invocation of `install`.
type InstallRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Platform   string
	Status     RunStatus
	Files      int
}

// InstalledFile is a single file fetched (and possibly extracted) during a run.
type InstalledFile struct {
	ID        int64
	RunID     string
	EntityID  string
	Kind      EntryKind
	Name      string
	URL       string
	Path      string
	SizeBytes int64
	Status    FileStatus
	Error     string
	CreatedAt time.Time
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	URL      string
	Path     string
	Size     int64
	Skipped  bool // a file of the same size already existed
	Filename string
}
