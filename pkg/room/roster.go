package room

// Roster is a list of participant ids.
// Adding an id that is already in the list does nothing.
type Roster struct {
	ids []string
}

func (r *Roster) Add(pid string) bool {
	if r.Has(pid) {
		return false
	}
	r.ids = append(r.ids, pid)
	return true
}

func (r *Roster) Remove(pid string) bool {
	for i, id := range r.ids {
		if id == pid {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Roster) Has(pid string) bool {
	if pid == "" {
		return false
	}
	for _, id := range r.ids {
		if id == pid {
			return true
		}
	}
	return false
}

func (r *Roster) Len() int { return len(r.ids) }
