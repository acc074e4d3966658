package model

// Rooms vary fastest, then slots, then requests: index = room + rooms*slot + rooms*slots*request + 1
type indexerImplementation struct {
	requests uint64
	slots    uint64
	rooms    uint64
}

func (indexer *indexerImplementation) Index(request, slot, room uint64) uint64 {
	return room + indexer.rooms*slot + indexer.rooms*indexer.slots*request + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (request, slot, room uint64) {
	index = index - 1
	room = index % indexer.rooms
	index = index / indexer.rooms

	slot = index % indexer.slots
	index = index / indexer.slots

	request = index % indexer.requests

	return request, slot, room
}

func (indexer *indexerImplementation) Variables() uint64 {
	return indexer.requests * indexer.slots * indexer.rooms
}
