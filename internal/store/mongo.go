// mongo.go implements Store on MongoDB for deployments that share one
// database between several server instances.
//
// Design: Records live where earlier deployments wrote them (database
// "quilter", collection "netlists", one document per email and filename).
// Those records hold the parsed document under "netlist" and no text,
// key or timestamp; mongo_doc.go fills the gaps on read. mgo sessions
// are not context-aware; each operation copies the root session and releases
// it when done, and ctx is only checked before the call is issued.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/juju/mgo/v3"
	"github.com/juju/mgo/v3/bson"
)

const (
	// MongoDatabase is the database netlists are stored in.
	MongoDatabase = "quilter"
	// MongoCollection is the collection netlists are stored in.
	MongoCollection = "netlists"
)

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	session *mgo.Session
	db      string
}

var _ Store = (*MongoStore)(nil)

// mongoNetlist is the stored document shape.
type mongoNetlist struct {
	ID        bson.ObjectId `bson:"_id,omitempty"`
	Key       string        `bson:"key,omitempty"`
	Email     string        `bson:"email"`
	Filename  string        `bson:"filename"`
	Content   string        `bson:"content,omitempty"`
	Netlist   bson.D        `bson:"netlist,omitempty"`
	Valid     bool          `bson:"valid"`
	Errors    []string      `bson:"errors"`
	CreatedAt int64         `bson:"created_at,omitempty"`
}

// OpenMongo dials url and ensures the (email, filename) unique index exists.
// An empty db selects MongoDatabase.
func OpenMongo(url, db string) (*MongoStore, error) {
	if db == "" {
		db = MongoDatabase
	}
	session, err := mgo.DialWithTimeout(url, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial mongo: %w", err)
	}
	session.SetMode(mgo.Monotonic, true)

	m := &MongoStore{session: session, db: db}
	err = m.do(context.Background(), func(c *mgo.Collection) error {
		return c.EnsureIndex(mgo.Index{
			Key:    []string{"email", "filename"},
			Unique: true,
		})
	})
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("ensure index: %w", err)
	}
	return m, nil
}

// do runs fn against the netlists collection on a private session copy.
func (m *MongoStore) do(ctx context.Context, fn func(c *mgo.Collection) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := m.session.Copy()
	defer s.Close()
	return fn(s.DB(m.db).C(MongoCollection))
}

// Close releases the root session.
func (m *MongoStore) Close() error {
	m.session.Close()
	return nil
}

// Insert stores a new netlist, mapping duplicate key errors to ErrAlreadyExists.
func (m *MongoStore) Insert(ctx context.Context, n *Netlist, opts InsertOptions) error {
	if err := prepare(n, opts); err != nil {
		return err
	}
	doc := newMongoNetlist(n)
	return m.do(ctx, func(c *mgo.Collection) error {
		if err := c.Insert(doc); err != nil {
			if mgo.IsDup(err) {
				return fmt.Errorf("%s/%s: %w", n.User, n.Filename, ErrAlreadyExists)
			}
			return fmt.Errorf("insert netlist: %w", err)
		}
		return nil
	})
}

// Delete removes the netlist stored under exactly (user, filename).
func (m *MongoStore) Delete(ctx context.Context, user, filename string) error {
	return m.do(ctx, func(c *mgo.Collection) error {
		err := c.Remove(bson.M{"email": user, "filename": filename})
		if errors.Is(err, mgo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("delete %s/%s: %w", user, filename, err)
		}
		return nil
	})
}

// Get returns the netlist stored under (user, filename).
func (m *MongoStore) Get(ctx context.Context, user, filename string) (*Netlist, error) {
	var doc mongoNetlist
	err := m.do(ctx, func(c *mgo.Collection) error {
		return c.Find(bson.M{"email": user, "filename": filename}).One(&doc)
	})
	if errors.Is(err, mgo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", user, filename, err)
	}
	n := doc.netlist()
	return &n, nil
}

// Exists reports whether (user, filename) is taken.
func (m *MongoStore) Exists(ctx context.Context, user, filename string) (bool, error) {
	var count int
	err := m.do(ctx, func(c *mgo.Collection) error {
		var err error
		count, err = c.Find(bson.M{"email": user, "filename": filename}).Limit(1).Count()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("check exists %s/%s: %w", user, filename, err)
	}
	return count > 0, nil
}

// ListByUser returns a user's netlists ordered by filename.
func (m *MongoStore) ListByUser(ctx context.Context, user string) ([]Netlist, error) {
	var docs []mongoNetlist
	err := m.do(ctx, func(c *mgo.Collection) error {
		return c.Find(bson.M{"email": user}).Sort("filename").All(&docs)
	})
	if err != nil {
		return nil, fmt.Errorf("list netlists for %s: %w", user, err)
	}
	out := make([]Netlist, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.netlist())
	}
	return out, nil
}

// Users returns every owner holding at least one netlist.
func (m *MongoStore) Users(ctx context.Context) ([]string, error) {
	var users []string
	err := m.do(ctx, func(c *mgo.Collection) error {
		return c.Find(nil).Distinct("email", &users)
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.Strings(users)
	return users, nil
}

// Count returns the number of netlists a user holds, or all when user is empty.
func (m *MongoStore) Count(ctx context.Context, user string) (int64, error) {
	var query bson.M
	if user != "" {
		query = bson.M{"email": user}
	}
	var n int
	err := m.do(ctx, func(c *mgo.Collection) error {
		var err error
		n, err = c.Find(query).Count()
		return err
	})
	return int64(n), err
}
