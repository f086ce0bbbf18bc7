package diff

// ReadOptions carries the optional read metadata. Offset is 0-based; range
// metadata is computed only when Limit is supplied. LinesRead, when set,
// overrides the count derived from content.
type ReadOptions struct {
	Offset    *int
	Limit     *int
	LinesRead *int
}

// Read describes a read-only operation. Content passes through unchanged and
// no diff is produced.
func (e *Engine) Read(path, content string, opts ReadOptions) (*ReadDiff, error) {
	if err := e.checkFilePath(path); err != nil {
		return nil, err
	}
	if err := e.checkContent("content", content); err != nil {
		return nil, err
	}
	if opts.Offset != nil && *opts.Offset < 0 {
		return nil, Validationf("offset", "offset must be >= 0, got %d", *opts.Offset)
	}
	if opts.Limit != nil && *opts.Limit < 1 {
		return nil, Validationf("limit", "limit must be >= 1, got %d", *opts.Limit)
	}
	if opts.LinesRead != nil && *opts.LinesRead < 0 {
		return nil, Validationf("lines_read", "lines_read must be >= 0, got %d", *opts.LinesRead)
	}

	linesRead := countLines(content)
	if opts.LinesRead != nil {
		linesRead = *opts.LinesRead
	}

	result := &ReadDiff{Content: content, LinesRead: linesRead}

	if opts.Limit != nil {
		start := 1
		if opts.Offset != nil {
			start = *opts.Offset + 1
		}
		end := start + *opts.Limit - 1
		result.StartLine = &start
		result.EndLine = &end
	}

	return result, nil
}
