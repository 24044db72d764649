// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entry implements the storepass data model: the fourteen
// entry kinds and their property schemas, the ordered tree of
// folders and accounts, and the visitor protocol used to walk it.
//
// The package is grounded on original_source/storepass/model.py but
// replaces its generic-map property bag with a per-kind schema table,
// enforced at SetProperty time, as recommended for a typed language.
package entry

// Kind discriminates the Root pseudo-node from the thirteen real
// entry kinds: Folder and the twelve account types.
type Kind int

const (
	KindRoot Kind = iota
	KindFolder
	KindCreditCard
	KindCryptoKey
	KindDatabase
	KindDoor
	KindEmail
	KindFTP
	KindGeneric
	KindPhone
	KindRemoteDesktop
	KindShell
	KindVNC
	KindWebsite
)

// Property describes one kind-specific attribute: its command-line
// name, its display label and its XML field id.
type Property struct {
	CLIName string
	Label   string
	FieldID string
}

type kindInfo struct {
	label      string
	cliName    string
	xmlType    string
	properties []Property
}

var kindTable = map[Kind]kindInfo{
	KindRoot:   {"", "", "", nil},
	KindFolder: {"Folder", "folder", "folder", nil},
	KindCreditCard: {"Credit card", "credit-card", "creditcard", []Property{
		{"card-type", "Card type", "creditcard-cardtype"},
		{"card-number", "Card number", "creditcard-cardnumber"},
		{"expiry-date", "Expiry date", "creditcard-expirydate"},
		{"ccv", "CCV", "creditcard-ccv"},
		{"pin", "PIN", "generic-pin"},
	}},
	KindCryptoKey: {"Crypto key", "crypto-key", "cryptokey", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"certificate", "Certificate", "generic-certificate"},
		{"keyfile", "Keyfile", "generic-keyfile"},
		{"password", "Password", "generic-password"},
	}},
	KindDatabase: {"Database", "database", "database", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
		{"database", "Database", "generic-database"},
	}},
	KindDoor: {"Door", "door", "door", []Property{
		{"location", "Location", "generic-location"},
		{"code", "Code", "generic-code"},
	}},
	KindEmail: {"Email", "email", "email", []Property{
		{"email", "Email", "generic-email"},
		{"hostname", "Hostname", "generic-hostname"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindFTP: {"FTP", "ftp", "ftp", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"port", "Port", "generic-port"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindGeneric: {"Generic", "generic", "generic", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindPhone: {"Phone", "phone", "phone", []Property{
		{"phone-number", "Phone number", "phone-phonenumber"},
		{"pin", "PIN", "generic-pin"},
	}},
	KindRemoteDesktop: {"Remote desktop", "remote-desktop", "remotedesktop", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"port", "Port", "generic-port"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindShell: {"Shell", "shell", "shell", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"domain", "Domain", "generic-domain"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindVNC: {"VNC", "vnc", "vnc", []Property{
		{"hostname", "Hostname", "generic-hostname"},
		{"port", "Port", "generic-port"},
		{"username", "Username", "generic-username"},
		{"password", "Password", "generic-password"},
	}},
	KindWebsite: {"Website", "website", "website", []Property{
		{"url", "URL", "generic-url"},
		{"username", "Username", "generic-username"},
		{"email", "Email", "generic-email"},
		{"password", "Password", "generic-password"},
	}},
}

// Label returns the kind's human-readable label, e.g. "Credit card".
func (k Kind) Label() string { return kindTable[k].label }

// CLIName returns the kebab-case name used on the command line, e.g.
// "credit-card". It is empty for KindRoot.
func (k Kind) CLIName() string { return kindTable[k].cliName }

// XMLType returns the concatenated-lowercase value used in the XML
// <entry type="..."> attribute, e.g. "creditcard".
func (k Kind) XMLType() string { return kindTable[k].xmlType }

// Properties returns the kind's property schema in declaration order.
// Root and Folder return nil.
func (k Kind) Properties() []Property {
	return kindTable[k].properties
}

// IsContainer reports whether entries of this kind may hold children.
func (k Kind) IsContainer() bool {
	return k == KindRoot || k == KindFolder
}

// IsAccount reports whether the kind is one of the twelve leaf account
// types (neither Root nor Folder).
func (k Kind) IsAccount() bool {
	return k != KindRoot && k != KindFolder
}

// Valid reports whether k is one of the fourteen known kinds.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// AllAccountKinds returns the twelve account kinds in schema-table order.
func AllAccountKinds() []Kind {
	return []Kind{
		KindCreditCard, KindCryptoKey, KindDatabase, KindDoor, KindEmail,
		KindFTP, KindGeneric, KindPhone, KindRemoteDesktop, KindShell,
		KindVNC, KindWebsite,
	}
}

// KindByCLIName looks up a non-root kind by its command-line name
// (e.g. "remote-desktop"), or by "folder".
func KindByCLIName(name string) (Kind, bool) {
	if name == "folder" {
		return KindFolder, true
	}
	for _, k := range AllAccountKinds() {
		if kindTable[k].cliName == name {
			return k, true
		}
	}
	return 0, false
}

// KindByXMLType looks up a kind by its XML type attribute value (e.g.
// "remotedesktop"), or "folder".
func KindByXMLType(typ string) (Kind, bool) {
	if typ == "folder" {
		return KindFolder, true
	}
	for _, k := range AllAccountKinds() {
		if kindTable[k].xmlType == typ {
			return k, true
		}
	}
	return 0, false
}

// PropertyByCLIName returns the property descriptor for a kind-specific
// command-line flag name, e.g. PropertyByCLIName(KindWebsite, "url").
func PropertyByCLIName(k Kind, cliName string) (Property, bool) {
	for _, p := range kindTable[k].properties {
		if p.CLIName == cliName {
			return p, true
		}
	}
	return Property{}, false
}

// PropertyByFieldID returns the property descriptor for a kind's XML
// field id, e.g. PropertyByFieldID(KindWebsite, "generic-url").
func PropertyByFieldID(k Kind, fieldID string) (Property, bool) {
	for _, p := range kindTable[k].properties {
		if p.FieldID == fieldID {
			return p, true
		}
	}
	return Property{}, false
}

// FieldIDsFor returns every valid XML field id for a kind, in schema
// order, for use in "allowed" error lists.
func FieldIDsFor(k Kind) []string {
	props := kindTable[k].properties
	ids := make([]string, len(props))
	for i, p := range props {
		ids[i] = p.FieldID
	}
	return ids
}
