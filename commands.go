package redisclient

import (
	"errors"
	"strconv"

	"redisclient/wire"
)

// KeyType is the storage type of a key as reported by TYPE.
type KeyType string

const (
	KeyTypeNone   KeyType = "none"
	KeyTypeString KeyType = "string"
	KeyTypeList   KeyType = "list"
	KeyTypeSet    KeyType = "set"
)

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// Ping checks that the server is reachable and responding.
func (c *Client) Ping() error {
	return c.statusCommand("PING")
}

// Auth authenticates the connection.
func (c *Client) Auth(password string) error {
	return c.statusCommand("AUTH", password)
}

// Set stores value under key, overwriting any previous value.
func (c *Client) Set(key string, value []byte) error {
	_, err := c.doValue(wire.TypeStatus, value, "SET", key)
	return err
}

// Get returns the value stored under key. The second return value reports
// whether the key existed; a stored empty value is found with an empty
// non-nil slice.
func (c *Client) Get(key string) ([]byte, bool, error) {
	return c.bulkCommand("GET", key)
}

// GetSet atomically stores value under key and returns the previous value,
// if any.
func (c *Client) GetSet(key string, value []byte) ([]byte, bool, error) {
	reply, err := c.doValue(wire.TypeBulk, value, "GETSET", key)
	if err != nil {
		return nil, false, err
	}
	if reply.Null {
		return nil, false, nil
	}
	return reply.Bulk, true, nil
}

// SetNX stores value under key only if the key does not exist. Reports
// whether the value was stored.
func (c *Client) SetNX(key string, value []byte) (bool, error) {
	return c.boolValueCommand(value, "SETNX", key)
}

// MGet returns the values for the given keys in order. Missing keys yield
// nil elements.
func (c *Client) MGet(keys ...string) ([][]byte, error) {
	args := make([]string, 0, len(keys)+1)
	args = append(args, "MGET")
	args = append(args, keys...)
	return c.multiBulkCommand(args...)
}

// Incr increments the integer value of key by one and returns the new value.
func (c *Client) Incr(key string) (int64, error) {
	return c.intCommand("INCR", key)
}

// IncrBy increments the integer value of key by n and returns the new value.
func (c *Client) IncrBy(key string, n int64) (int64, error) {
	return c.intCommand("INCRBY", key, itoa(n))
}

// Decr decrements the integer value of key by one and returns the new value.
func (c *Client) Decr(key string) (int64, error) {
	return c.intCommand("DECR", key)
}

// DecrBy decrements the integer value of key by n and returns the new value.
func (c *Client) DecrBy(key string, n int64) (int64, error) {
	return c.intCommand("DECRBY", key, itoa(n))
}

// Exists reports whether key exists.
func (c *Client) Exists(key string) (bool, error) {
	return c.boolCommand("EXISTS", key)
}

// Del removes key. Reports whether a key was actually removed.
func (c *Client) Del(key string) (bool, error) {
	return c.boolCommand("DEL", key)
}

// Type returns the storage type of key, KeyTypeNone if it does not exist.
func (c *Client) Type(key string) (KeyType, error) {
	reply, err := c.do(wire.TypeStatus, "TYPE", key)
	if err != nil {
		return "", err
	}
	switch t := KeyType(reply.Status); t {
	case KeyTypeString, KeyTypeList, KeyTypeSet:
		return t, nil
	default:
		return KeyTypeNone, nil
	}
}

// Keys returns all keys matching the glob-style pattern.
func (c *Client) Keys(pattern string) ([]string, error) {
	elems, err := c.multiBulkCommand("KEYS", pattern)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(elems))
	for i, elem := range elems {
		keys[i] = string(elem)
	}
	return keys, nil
}

// RandomKey returns a random key from the current database, empty when the
// database is empty.
func (c *Client) RandomKey() (string, error) {
	reply, err := c.do(wire.TypeStatus, "RANDOMKEY")
	if err != nil {
		return "", err
	}
	return reply.Status, nil
}

// Rename renames key to newKey, overwriting an existing newKey.
func (c *Client) Rename(key, newKey string) error {
	return c.statusCommand("RENAME", key, newKey)
}

// RenameNX renames key to newKey only if newKey does not exist. Reports
// whether the rename happened.
func (c *Client) RenameNX(key, newKey string) (bool, error) {
	return c.boolCommand("RENAMENX", key, newKey)
}

// DBSize returns the number of keys in the current database.
func (c *Client) DBSize() (int64, error) {
	return c.intCommand("DBSIZE")
}

// Expire sets a time to live in seconds on key. Reports whether the
// timeout was set.
func (c *Client) Expire(key string, seconds int64) (bool, error) {
	return c.boolCommand("EXPIRE", key, itoa(seconds))
}

// TTL returns the remaining time to live of key in seconds, negative when
// the key has no timeout or does not exist.
func (c *Client) TTL(key string) (int64, error) {
	return c.intCommand("TTL", key)
}

// RPush appends value to the list at key and returns the new list length.
func (c *Client) RPush(key string, value []byte) (int64, error) {
	reply, err := c.doValue(wire.TypeInteger, value, "RPUSH", key)
	if err != nil {
		return 0, err
	}
	return reply.Int, nil
}

// LPush prepends value to the list at key and returns the new list length.
func (c *Client) LPush(key string, value []byte) (int64, error) {
	reply, err := c.doValue(wire.TypeInteger, value, "LPUSH", key)
	if err != nil {
		return 0, err
	}
	return reply.Int, nil
}

// LLen returns the length of the list at key.
func (c *Client) LLen(key string) (int64, error) {
	return c.intCommand("LLEN", key)
}

// LRange returns the list elements between start and stop inclusive.
// Negative indexes count from the end of the list.
func (c *Client) LRange(key string, start, stop int64) ([][]byte, error) {
	return c.multiBulkCommand("LRANGE", key, itoa(start), itoa(stop))
}

// LIndex returns the element at index in the list at key.
func (c *Client) LIndex(key string, index int64) ([]byte, bool, error) {
	return c.bulkCommand("LINDEX", key, itoa(index))
}

// LSet replaces the element at index in the list at key.
func (c *Client) LSet(key string, index int64, value []byte) error {
	_, err := c.doValue(wire.TypeStatus, value, "LSET", key, itoa(index))
	return err
}

// LRem removes up to count occurrences of value from the list at key and
// returns the number removed. A negative count removes from the tail, zero
// removes all occurrences.
func (c *Client) LRem(key string, count int64, value []byte) (int64, error) {
	reply, err := c.doValue(wire.TypeInteger, value, "LREM", key, itoa(count))
	if err != nil {
		return 0, err
	}
	return reply.Int, nil
}

// LPop removes and returns the first element of the list at key.
func (c *Client) LPop(key string) ([]byte, bool, error) {
	return c.bulkCommand("LPOP", key)
}

// RPop removes and returns the last element of the list at key.
func (c *Client) RPop(key string) ([]byte, bool, error) {
	return c.bulkCommand("RPOP", key)
}

// SAdd adds member to the set at key. Reports whether the member was newly
// added.
func (c *Client) SAdd(key string, member []byte) (bool, error) {
	return c.boolValueCommand(member, "SADD", key)
}

// SRem removes member from the set at key. Reports whether the member was
// present.
func (c *Client) SRem(key string, member []byte) (bool, error) {
	return c.boolValueCommand(member, "SREM", key)
}

// SIsMember reports whether member is in the set at key.
func (c *Client) SIsMember(key string, member []byte) (bool, error) {
	return c.boolValueCommand(member, "SISMEMBER", key)
}

// Select switches the connection to the database at index.
func (c *Client) Select(index int) error {
	return c.statusCommand("SELECT", strconv.Itoa(index))
}

// Move moves key to the database at index. Reports whether the key was
// moved.
func (c *Client) Move(key string, index int) (bool, error) {
	return c.boolCommand("MOVE", key, strconv.Itoa(index))
}

// FlushDB removes all keys from the current database.
func (c *Client) FlushDB() error {
	return c.statusCommand("FLUSHDB")
}

// FlushAll removes all keys from all databases.
func (c *Client) FlushAll() error {
	return c.statusCommand("FLUSHALL")
}

// Sort returns the elements of the list or set named by query, which is a
// raw SORT argument string such as "mylist LIMIT 0 10 ALPHA".
func (c *Client) Sort(query string) ([][]byte, error) {
	return c.multiBulkCommand("SORT", query)
}

// Save performs a synchronous dump to disk.
func (c *Client) Save() error {
	return c.statusCommand("SAVE")
}

// BGSave starts a background dump to disk.
func (c *Client) BGSave() error {
	return c.statusCommand("BGSAVE")
}

// LastSave returns the unix time of the last completed dump.
func (c *Client) LastSave() (int64, error) {
	return c.intCommand("LASTSAVE")
}

// Shutdown asks the server to dump and exit. On success the server closes
// the connection without replying, which is not reported as an error.
func (c *Client) Shutdown() error {
	err := c.statusCommand("SHUTDOWN")
	if errors.Is(err, wire.ErrConnectionClosed) {
		return nil
	}
	return err
}

// Monitor puts the connection into monitor mode, in which the server
// streams back every command it processes. Only the acknowledgement is
// consumed here; the stream itself is not decoded, and the connection
// cannot be used for further commands.
func (c *Client) Monitor() error {
	return c.statusCommand("MONITOR")
}

// SlaveOf makes the server a replica of the given master, or a master
// again when host is empty or port is zero.
func (c *Client) SlaveOf(host string, port int) error {
	if host == "" || port == 0 {
		return c.statusCommand("SLAVEOF", "no", "one")
	}
	return c.statusCommand("SLAVEOF", host, strconv.Itoa(port))
}
