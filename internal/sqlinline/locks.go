package sqlinline

// AllocationLockKey is the advisory lock id held by every allocation pass.
const AllocationLockKey int64 = 0x66756e64

const QLockAllocation = `--sql 37a6dcb1-dbf5-4db0-9bec-f32b8f45ef8a
select pg_advisory_xact_lock($1::bigint);
`
