package sqlinline

const QInsertProject = `--sql 91835439-3174-49c2-9a2d-9b611c4c30a8
insert into charity_projects(name, description, full_amount, invested_amount, fully_invested, create_date, close_date)
values ($1::text, $2::text, $3::bigint, 0, false, $4::timestamptz, null)
returning id;
`

const QGetProject = `--sql d8339203-fefe-41d2-8994-cb4add75078f
select id, name, description, full_amount, invested_amount, fully_invested, create_date, close_date
from charity_projects
where id = $1::bigint
for update;
`

const QFindProjectIDByName = `--sql d1b832a1-c883-49a4-8f20-ebda1b90a0a3
select id
from charity_projects
where name = $1::text;
`

const QListProjects = `--sql 3433aa2c-6f2d-4ea0-84fd-f8753eb35fc7
select id, name, description, full_amount, invested_amount, fully_invested, create_date, close_date
from charity_projects
order by create_date, id;
`

const QListOpenProjects = `--sql aa17990a-3566-4309-9187-7460e81119f5
select id, name, description, full_amount, invested_amount, fully_invested, create_date, close_date
from charity_projects
where fully_invested = false
order by create_date, id
for update;
`

const QUpdateProject = `--sql 13407fdb-b102-426b-ab08-ed850a9a66a8
update charity_projects
set name = $2::text,
    description = $3::text,
    full_amount = $4::bigint,
    invested_amount = $5::bigint,
    fully_invested = $6::boolean,
    close_date = $7::timestamptz
where id = $1::bigint;
`

const QUpdateProjectFunding = `--sql 2fda97f0-7da3-4b32-8ce8-4aa84bbabd70
update charity_projects
set invested_amount = $2::bigint,
    fully_invested = $3::boolean,
    close_date = $4::timestamptz
where id = $1::bigint;
`

const QDeleteProject = `--sql 93f2e06f-362c-4090-b4a5-0688ba187264
delete from charity_projects
where id = $1::bigint and invested_amount = 0;
`
