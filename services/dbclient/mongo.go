package dbclient

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"dbconnmanager/pkg/logger"
	"dbconnmanager/services/credential"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoClient struct {
	timeout time.Duration
}

// NewMongoClient creates a MongoDB client whose operations are bounded by timeout (0 = no bound).
func NewMongoClient(timeout time.Duration) MongoClient {
	return &mongoClient{timeout: timeout}
}

// BuildMongoURI renders mongodb://[user[:password]@]host[:port] with the
// userinfo percent-encoded. Scalar entries of the normalized options object
// are appended as URI query parameters.
func BuildMongoURI(creds credential.Credentials) string {
	uri := "mongodb://"
	if creds.Username != "" {
		var userinfo *url.Userinfo
		if creds.Password != "" {
			userinfo = url.UserPassword(creds.Username, creds.Password)
		} else {
			userinfo = url.User(creds.Username)
		}
		uri += userinfo.String() + "@"
	}
	uri += creds.Host
	if p, err := strconv.Atoi(creds.Port); err == nil {
		uri += ":" + strconv.Itoa(p)
	}

	if params := uriOptions(credential.OptionsMap(creds.Options)); len(params) > 0 {
		uri += "/?" + params.Encode()
	}
	return uri
}

func uriOptions(opts map[string]any) url.Values {
	params := url.Values{}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := opts[k].(type) {
		case string:
			params.Set(k, v)
		case bool:
			params.Set(k, strconv.FormatBool(v))
		case float64:
			params.Set(k, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			logger.Warnf("Ignoring non-scalar MongoDB client option %q", k)
		}
	}
	return params
}

func (c *mongoClient) Available() bool {
	return true
}

func (c *mongoClient) connect(creds credential.Credentials) (*mongo.Client, error) {
	opts := options.Client()
	if c.timeout > 0 {
		opts.SetServerSelectionTimeout(c.timeout)
		opts.SetConnectTimeout(c.timeout)
	}
	opts.ApplyURI(BuildMongoURI(creds))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, &DriverError{Kind: ErrConnect, Err: err}
	}
	return client, nil
}

func (c *mongoClient) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warnf("MongoDB disconnect failed: %v", err)
	}
}

// Ping runs {ping: 1} against the configured database, or "admin" when none is set.
func (c *mongoClient) Ping(ctx context.Context, creds credential.Credentials) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	client, err := c.connect(creds)
	if err != nil {
		return err
	}
	defer c.disconnect(client)

	dbName := creds.Database
	if dbName == "" {
		dbName = "admin"
	}
	if err := client.Database(dbName).RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return &DriverError{Kind: ErrConnect, Err: err}
	}
	return nil
}

func (c *mongoClient) Find(ctx context.Context, creds credential.Credentials, req FindRequest) ([]bson.Raw, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	client, err := c.connect(creds)
	if err != nil {
		return nil, err
	}
	defer c.disconnect(client)

	filter := req.Filter
	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := client.Database(creds.Database).Collection(req.Collection).Find(ctx, filter, findOptions(req))
	if err != nil {
		return nil, &DriverError{Kind: ErrQuery, Err: err}
	}
	defer cursor.Close(ctx)

	docs := []bson.Raw{}
	for cursor.Next(ctx) {
		doc := make(bson.Raw, len(cursor.Current))
		copy(doc, cursor.Current)
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, &DriverError{Kind: ErrQuery, Err: err}
	}
	return docs, nil
}

// findOptions maps req onto driver options. A limit of zero or less leaves the find unbounded.
func findOptions(req FindRequest) *options.FindOptionsBuilder {
	opts := options.Find()
	if len(req.Projection) > 0 {
		opts.SetProjection(req.Projection)
	}
	if req.Limit > 0 {
		opts.SetLimit(req.Limit)
	}
	return opts
}

type unavailableMongoClient struct{}

// NewUnavailableMongoClient returns the client used when MongoDB support is
// disabled; every operation fails with ErrMongoUnavailable.
func NewUnavailableMongoClient() MongoClient {
	return unavailableMongoClient{}
}

func (unavailableMongoClient) Available() bool {
	return false
}

func (unavailableMongoClient) Ping(context.Context, credential.Credentials) error {
	return ErrMongoUnavailable
}

func (unavailableMongoClient) Find(context.Context, credential.Credentials, FindRequest) ([]bson.Raw, error) {
	return nil, fmt.Errorf("find: %w", ErrMongoUnavailable)
}
