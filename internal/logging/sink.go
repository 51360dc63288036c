package logging

// WithFields returns a Sink that adds fields to every entry written to s
func WithFields(s Sink, fields ...Field) Sink {
	if l, ok := s.(*Logger); ok {
		return l.With(fields...)
	}
	return fieldSink{next: s, fields: fields}
}

type fieldSink struct {
	next   Sink
	fields []Field
}

func (f fieldSink) merge(fields []Field) []Field {
	return append(append(make([]Field, 0, len(f.fields)+len(fields)), f.fields...), fields...)
}

func (f fieldSink) Debug(msg string, fields ...Field) { f.next.Debug(msg, f.merge(fields)...) }
func (f fieldSink) Info(msg string, fields ...Field)  { f.next.Info(msg, f.merge(fields)...) }
func (f fieldSink) Warn(msg string, fields ...Field)  { f.next.Warn(msg, f.merge(fields)...) }
func (f fieldSink) Error(msg string, fields ...Field) { f.next.Error(msg, f.merge(fields)...) }
