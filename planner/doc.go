/*
Package planner computes route options, fares, schedules and station
details over a loaded feed store.

The stop → routes adjacency is derived once per Planner by joining
stop_times to trips. Direct options come from route-set intersection
backed by a concrete shared trip for timing; pairs with no shared line get
single-interchange options via the common-reachable-stop heuristic. That
heuristic ignores direction and time of day on purpose: the network is
small and the result shape, not shortest-path optimality, is the contract.

All result types marshal directly to JSON for the conversational layer.
Per-query failures are returned as typed errors (*StationNotFoundError);
an empty option list is a valid "no route" answer, not a failure.
*/
package planner
