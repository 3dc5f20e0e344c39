package sink

// WriteRaw puts v on producer id's shard as is, bypassing the frame copy.
func (s *Shared) WriteRaw(id uint64, v any) bool {
	if !s.r.Write(id, v) {
		return false
	}
	s.notify()
	return true
}
