// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asn1

import "time"

// Object is a structured [Data] value. The set of implementations is closed:
// [OID], [AttributeSet], [BitString], [Context], [StringObject] and
// [DateObject].
type Object interface {
	Data
	isObject()
}

// OID is an object identifier referenced by name. The name is either a name
// known to the OID registry or the dot-separated notation of the identifier.
type OID struct {
	Name string
}

// AttributeSet is a single attribute of an X.509 name. It is encoded as a SET
// containing exactly one SEQUENCE of the attribute type and its string value.
// Kind records the string type of the value. If Kind is [StringDefault] the
// type is selected by [SelectStringKind].
type AttributeSet struct {
	Name  OID
	Value string
	Kind  StringKind
}

// Context is a context-specific tagged value. An explicit context wraps the
// complete encoding of Contents. An implicit context replaces the identifier
// of Contents with its own tag.
type Context struct {
	Number   uint32
	Kind     ContextKind
	Contents Data
}

// StringObject is text with an explicitly requested wire type.
type StringObject struct {
	Kind  StringKind
	Value string
}

// DateObject is a point in time with an explicitly requested wire type.
type DateObject struct {
	Kind  DateKind
	Value time.Time
}

func (OID) isData()          {}
func (AttributeSet) isData() {}
func (BitString) isData()    {}
func (Context) isData()      {}
func (StringObject) isData() {}
func (DateObject) isData()   {}

func (OID) isObject()          {}
func (AttributeSet) isObject() {}
func (BitString) isObject()    {}
func (Context) isObject()      {}
func (StringObject) isObject() {}
func (DateObject) isObject()   {}

// StringKind selects the wire type of text.
//
//go:generate stringer -type=StringKind -trimprefix=String
type StringKind uint8

const (
	StringDefault StringKind = iota
	StringPrintable
	StringIA5
	StringUTF8
)

// DateKind selects the wire type of a time.
//
//go:generate stringer -type=DateKind -trimprefix=Date
type DateKind uint8

const (
	DateDefault DateKind = iota
	DateUTC
	DateGeneral
)

// ContextKind selects between explicit and implicit tagging.
//
//go:generate stringer -type=ContextKind -trimprefix=Context
type ContextKind uint8

const (
	ContextExplicit ContextKind = iota
	ContextImplicit
)
