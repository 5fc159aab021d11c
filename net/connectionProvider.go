package net

type ConnectionProvider interface {
	GetRPCConnection() *Connection
}

type connectionProvider struct {
	RPCPool *ConnectionPool
}

func NewConnectionProvider(rpcPool *ConnectionPool) ConnectionProvider {
	return &connectionProvider{RPCPool: rpcPool}
}

func (cp *connectionProvider) GetRPCConnection() *Connection {
	return cp.RPCPool.Get()
}
