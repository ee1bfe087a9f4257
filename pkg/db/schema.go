package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per analysis run
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_dir TEXT NOT NULL,
    document_count INTEGER NOT NULL DEFAULT 0,

    -- Persona/job resolution
    original_persona TEXT,
    original_job TEXT,
    effective_persona TEXT NOT NULL,
    effective_job TEXT NOT NULL,
    document_type TEXT NOT NULL,
    language TEXT,
    analysis_method TEXT NOT NULL,

    section_count INTEGER NOT NULL DEFAULT 0,
    output_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_type ON runs(document_type);

-- Documents analyzed in each run
CREATE TABLE IF NOT EXISTS run_documents (
    run_document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    document TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_documents_run ON run_documents(run_id);

-- Ranked sections produced by each run
CREATE TABLE IF NOT EXISTS run_sections (
    run_section_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    document TEXT NOT NULL,
    section_title TEXT NOT NULL,
    importance_rank INTEGER NOT NULL,
    page_number INTEGER NOT NULL,
    relevance_score REAL NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_sections_run ON run_sections(run_id);
CREATE INDEX IF NOT EXISTS idx_run_sections_rank ON run_sections(run_id, importance_rank);
`
