package coordinator

import "github.com/cocode-dev/cocode/pkg/com"

// Crowd denotes all the connected users.
type Crowd struct {
	users *com.Map[com.Uid, *User]
}

func NewCrowd() Crowd { return Crowd{users: com.NewMap[com.Uid, *User]()} }

func (c *Crowd) add(u *User) {
	c.users.Put(u.Id(), u)
	connectionsActive.Inc()
}

func (c *Crowd) finish(u *User) {
	if u == nil {
		return
	}
	if _, ok := c.users.Pop(u.Id()); ok {
		connectionsActive.Dec()
	}
}

func (c *Crowd) Len() int { return c.users.Len() }

// each runs fn for every user, fn must not change the crowd.
func (c *Crowd) each(fn func(u *User)) { c.users.ForEach(fn) }
