package com

import "github.com/rs/xid"

// Uid is an opaque connection handle.
type Uid struct {
	xid.ID
}

func NewUid() Uid { return Uid{xid.New()} }

func (u Uid) Short() string { s := u.String(); return s[:3] + "." + s[len(s)-3:] }
