package solver

import (
	"sort"
	"strconv"
	"strings"
)

// findClusters enumerates connected seat clusters of exactly the given
// size over the available seats. From every available seat it grows a
// cluster breadth-first through the adjacency graph, stopping once the
// target size is reached; starts that cannot reach the size are
// discarded, and clusters with identical seat sets are deduplicated.
// availOrder fixes the start order, which keeps the enumeration
// deterministic.
func (st *solveState) findClusters(size int) [][]SeatID {
	if size < 1 {
		return nil
	}
	var out [][]SeatID
	seen := make(map[string]bool)

	for _, start := range st.availOrder {
		if !st.avail[start] {
			continue
		}
		if !st.spendStep() {
			break
		}
		cluster := []SeatID{start}
		inCluster := map[SeatID]bool{start: true}
		for qi := 0; qi < len(cluster) && len(cluster) < size; qi++ {
			// Expand in availOrder so BFS frontier order does not depend
			// on map iteration.
			cur := cluster[qi]
			for _, nb := range st.neighborList(cur) {
				if len(cluster) >= size {
					break
				}
				if !st.avail[nb] || inCluster[nb] {
					continue
				}
				inCluster[nb] = true
				cluster = append(cluster, nb)
			}
		}
		if len(cluster) != size {
			continue
		}
		key := clusterKey(cluster)
		if seen[key] {
			continue
		}
		seen[key] = true
		sorted := make([]SeatID, len(cluster))
		copy(sorted, cluster)
		sort.Slice(sorted, func(i, j int) bool { return st.posOf[sorted[i]] < st.posOf[sorted[j]] })
		out = append(out, sorted)
	}
	return out
}

// neighborList returns the neighbors of a seat ordered by their
// position in the available-seats list.
func (st *solveState) neighborList(id SeatID) []SeatID {
	if cached, ok := st.nbCache[id]; ok {
		return cached
	}
	nbs := make([]SeatID, 0, len(st.adj[id]))
	for nb := range st.adj[id] {
		nbs = append(nbs, nb)
	}
	sort.Slice(nbs, func(i, j int) bool { return st.posOf[nbs[i]] < st.posOf[nbs[j]] })
	st.nbCache[id] = nbs
	return nbs
}

func clusterKey(cluster []SeatID) string {
	ids := make([]uint64, len(cluster))
	for i, s := range cluster {
		ids[i] = uint64(s)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(id, 10))
	}
	return b.String()
}

// clusterFitsGroup checks that some bijection between group members and
// cluster seats satisfies every member's tag requirement and seats
// every realized together pair on adjacent seats.
func (st *solveState) clusterFitsGroup(group []StudentID, cluster []SeatID) bool {
	return st.matchGroupToCluster(group, cluster) != nil
}

// matchGroupToCluster finds a member-to-seat bijection that honors each
// member's tags and, for every rule pair inside the group, puts the two
// students on adjacent seats. A cluster is connected as a whole, which
// does not make every seat pair in it adjacent: on a three-seat row a
// chained group like (1,2)+(1,3) only works with student 1 in the
// middle. Returns nil when no such bijection exists. Members declaring
// the most tags are matched first; a small backtracking search suffices
// because clusters are exactly group-sized.
func (st *solveState) matchGroupToCluster(group []StudentID, cluster []SeatID) map[StudentID]SeatID {
	ordered := make([]StudentID, len(group))
	copy(ordered, group)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(st.tagsOf[ordered[i]]) > len(st.tagsOf[ordered[j]])
	})

	assign := make(map[StudentID]SeatID, len(group))
	used := make([]bool, len(cluster))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(ordered) {
			return true
		}
		for ci, seat := range cluster {
			if used[ci] || !st.seatCompatible(ordered[i], seat) {
				continue
			}
			if !st.partnersAdjacent(ordered[i], seat, assign) {
				continue
			}
			used[ci] = true
			assign[ordered[i]] = seat
			if match(i + 1) {
				return true
			}
			used[ci] = false
			delete(assign, ordered[i])
		}
		return false
	}
	if !match(0) {
		return nil
	}
	return assign
}

// partnersAdjacent checks the candidate seat against the already-seated
// part of the group: every realized together pair between member and a
// seated partner must land on adjacent seats.
func (st *solveState) partnersAdjacent(member StudentID, seat SeatID, assign map[StudentID]SeatID) bool {
	for other, otherSeat := range assign {
		if st.cs.together[makePair(member, other)] && !st.adj.Neighbors(seat, otherSeat) {
			return false
		}
	}
	return true
}

// seatCompatible reports whether a seat carries every tag the student
// declares. Students with no tags accept any seat.
func (st *solveState) seatCompatible(student StudentID, seat SeatID) bool {
	tags := st.tagsOf[student]
	if len(tags) == 0 {
		return true
	}
	seatTags := st.seatTags[seat]
	for _, t := range tags {
		if !seatTags[t] {
			return false
		}
	}
	return true
}
