package sqlinline

const QInsertDonation = `--sql 9b79c57c-3615-48a2-9d85-3426d5b3f7eb
insert into donations(user_id, full_amount, invested_amount, fully_invested, comment, create_date, close_date)
values (nullif($1::text, ''), $2::bigint, 0, false, $3::text, $4::timestamptz, null)
returning id;
`

const QListDonations = `--sql 7a08e4f6-cb8a-42c4-bd7f-291d6e913edc
select id, user_id, full_amount, invested_amount, fully_invested, comment, create_date, close_date
from donations
order by create_date, id;
`

const QListDonationsByUser = `--sql 921455ea-759d-414d-928f-72b46c5b72f9
select id, user_id, full_amount, invested_amount, fully_invested, comment, create_date, close_date
from donations
where user_id = $1::text
order by create_date, id;
`

const QListOpenDonations = `--sql 9ac86c46-5d56-48bf-a71f-14e56f50aea0
select id, user_id, full_amount, invested_amount, fully_invested, comment, create_date, close_date
from donations
where fully_invested = false
order by create_date, id
for update;
`

const QUpdateDonationFunding = `--sql e06bca7f-e0aa-48bb-9c55-16657d0a2bfe
update donations
set invested_amount = $2::bigint,
    fully_invested = $3::boolean,
    close_date = $4::timestamptz
where id = $1::bigint;
`
