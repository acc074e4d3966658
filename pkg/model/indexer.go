package model

// indexer interface is design to give a unique index to a combination of scheduling variable's attributes and vice versa
type indexer interface {
	// Returns a unique index to a combination of scheduling variable's attributes
	Index(request, slot, room uint64) uint64
	// Returns a combination of scheduling variable's attributes from a unique index
	Attributes(index uint64) (request, slot, room uint64)
	// Returns the total number of variables
	Variables() uint64
}

func newIndexer(requests, slots, rooms uint64) indexer {
	return &indexerImplementation{
		requests: requests,
		slots:    slots,
		rooms:    rooms,
	}
}
