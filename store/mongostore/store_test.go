package mongostore

import (
	"testing"

	"gopkg.in/mgo.v2/bson"
)

func TestPartialDocRoundTrip(t *testing.T) {
	in := partialDoc{Name: "greet", Source: "hi {{name}}"}
	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var doc partialDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Name != "greet" || doc.Source != "hi {{name}}" {
		t.Fatalf("unexpected doc: %#v", doc)
	}
}
