// Package mongostore backs hbars.PartialLoader with partials kept in
// a MongoDB collection, for hosts that manage user-authored partials
// as data rather than files.
package mongostore

import (
	"github.com/juju/errors"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// partialDoc is the on-disk shape of a stored partial.
type partialDoc struct {
	Name   string `bson:"name"`
	Source string `bson:"source"`
}

// Store loads and saves partial templates in a MongoDB collection. It
// implements hbars.PartialLoader without importing the hbars package,
// so store/mongostore stays usable without pulling the template
// engine into callers that only need storage.
type Store struct {
	coll *mgo.Collection
}

// New returns a Store backed by the named database/collection on
// session. The caller owns session's lifetime.
func New(session *mgo.Session, dbName, collName string) *Store {
	return &Store{coll: session.DB(dbName).C(collName)}
}

// LoadPartial implements hbars.PartialLoader: found is false (with a
// nil error) when no document with that name exists.
func (s *Store) LoadPartial(name string) (source string, found bool, err error) {
	var doc partialDoc
	err = s.coll.Find(bson.M{"name": name}).One(&doc)
	if err == mgo.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Annotatef(err, "loading partial %q", name)
	}
	return doc.Source, true, nil
}

// Save upserts a partial's source by name.
func (s *Store) Save(name, source string) error {
	_, err := s.coll.Upsert(bson.M{"name": name}, bson.M{"$set": partialDoc{Name: name, Source: source}})
	if err != nil {
		return errors.Annotatef(err, "saving partial %q", name)
	}
	return nil
}

// Delete removes a stored partial, if present.
func (s *Store) Delete(name string) error {
	err := s.coll.Remove(bson.M{"name": name})
	if err != nil && err != mgo.ErrNotFound {
		return errors.Annotatef(err, "deleting partial %q", name)
	}
	return nil
}
